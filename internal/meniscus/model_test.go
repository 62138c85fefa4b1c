package meniscus_test

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/san-kum/menisim/internal/integrators"
	"github.com/san-kum/menisim/internal/meniscus"
)

var _ = Describe("Model", func() {
	var p meniscus.Params

	BeforeEach(func() {
		p = meniscus.DefaultParams()
	})

	Describe("the five-sample water scenario", func() {
		var prof *meniscus.Profile

		BeforeEach(func() {
			p.N = 5
			var err error
			prof, err = meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())
		})

		It("samples the radius evenly from 0 to R", func() {
			Expect(prof.R).To(HaveLen(5))
			expected := []float64{0, 0.0025, 0.005, 0.0075, 0.01}
			for i, r := range expected {
				Expect(prof.R[i]).To(BeNumerically("~", r, 1e-15))
			}
			Expect(prof.R[0]).To(Equal(0.0))
			Expect(prof.R[4]).To(Equal(0.01))
		})

		It("rises monotonically from a positive apex toward the wall", func() {
			Expect(prof.Z).To(HaveLen(5))
			Expect(prof.Z[0]).To(BeNumerically(">", 0))
			for i := 1; i < len(prof.Z); i++ {
				Expect(prof.Z[i]).To(BeNumerically(">", prof.Z[i-1]))
			}
		})

		It("matches the reference apex and wall heights", func() {
			Expect(prof.CapillaryLength).To(BeNumerically("~", 0.002709604534510725, 1e-15))
			Expect(prof.ZMin).To(BeNumerically("~", 0.10778124755752955, 1e-9))
			Expect(prof.Z[0]).To(BeNumerically("~", 2.920445571171051e-4, 1e-12))
			Expect(prof.Z[4]).To(BeNumerically("~", 3.112324463463977e-3, 1e-11))
		})

		It("converges well within the iteration cap", func() {
			Expect(prof.Iterations).To(BeNumerically("<=", 8))
			Expect(prof.Iterations).To(BeNumerically("<", dynamo.DefaultSolveConfig().MaxIter))
		})
	})

	Describe("boundary conditions", func() {
		It("starts flat at the axis and meets cot(theta) at the wall", func() {
			prof, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			Expect(prof.Slope[0]).To(Equal(0.0))
			Expect(prof.Slope[len(prof.Slope)-1]).To(BeNumerically("~", 1/math.Tan(math.Pi/6), 1e-10))
			Expect(math.Abs(prof.Residual)).To(BeNumerically("<", 1e-10))
		})

		It("reports the apex as z_min scaled by the capillary length", func() {
			prof, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(prof.Z[0]).To(BeNumerically("~", prof.ZMin*prof.CapillaryLength, 1e-18))
			Expect(prof.ZMin).To(BeNumerically("~", 0.1105833069987432, 1e-9))
		})
	})

	Describe("output shape", func() {
		DescribeTable("returns N samples spanning [0, R]",
			func(n int, radius, theta float64) {
				p.N, p.Radius, p.ThetaDeg = n, radius, theta
				prof, err := meniscus.Solve(p)
				Expect(err).NotTo(HaveOccurred())

				Expect(prof.R).To(HaveLen(n))
				Expect(prof.Z).To(HaveLen(n))
				Expect(prof.R[0]).To(Equal(0.0))
				Expect(prof.R[n-1]).To(Equal(radius))
				for i := 1; i < n; i++ {
					Expect(prof.R[i]).To(BeNumerically(">=", prof.R[i-1]))
				}
			},
			Entry("two samples in a narrow tube", 2, 0.002, 60.0),
			Entry("three samples", 3, 0.01, 30.0),
			Entry("default density", 200, 0.01, 30.0),
			Entry("odd count", 37, 0.005, 70.0),
		)

		It("clamps the sample count to two", func() {
			p.N, p.Radius, p.ThetaDeg = -4, 0.002, 60
			prof, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(prof.Len()).To(Equal(2))
		})
	})

	Describe("symmetry of the contact angle", func() {
		It("mirrors the profile for supplementary angles", func() {
			p.N = 5
			wet, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			p.ThetaDeg = 150
			dry, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			for i := range wet.Z {
				Expect(dry.Z[i]).To(BeNumerically("~", -wet.Z[i], 1e-12))
			}
		})
	})

	Describe("small slopes", func() {
		It("agrees with the linearized Bessel profile near 90 degrees", func() {
			p.ThetaDeg, p.N = 89, 100
			prof, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			_, lin, err := meniscus.LinearProfile(p)
			Expect(err).NotTo(HaveOccurred())
			for i := range lin {
				Expect(math.Abs(prof.Z[i]-lin[i]) / math.Abs(lin[i])).To(BeNumerically("<", 1e-3))
			}
		})
	})

	Describe("failures", func() {
		It("rejects a zero contact angle", func() {
			p.ThetaDeg = 0
			prof, err := meniscus.Solve(p)
			Expect(err).To(MatchError(dynamo.ErrNumericDomain))
			Expect(prof).To(BeNil())
		})

		It("rejects a 180 degree contact angle", func() {
			p.ThetaDeg = 180
			_, err := meniscus.Solve(p)
			Expect(err).To(MatchError(dynamo.ErrNumericDomain))
		})

		It("rejects a non-positive radius", func() {
			p.Radius = 0
			_, err := meniscus.Solve(p)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})

		It("reports a steep meniscus as a convergence failure instead of a profile", func() {
			p.ThetaDeg = 10
			prof, err := meniscus.Solve(p)
			Expect(err).To(MatchError(dynamo.ErrConvergence))
			Expect(prof).To(BeNil())

			var se *dynamo.SolveError
			Expect(err).To(BeAssignableToTypeOf(se))
		})

		It("fails rather than accepting a single coarse step", func() {
			p.N = 2
			_, err := meniscus.Solve(p)
			Expect(err).To(MatchError(dynamo.ErrConvergence))
		})
	})

	Describe("integrator choice", func() {
		It("uses the stepper configured on the model", func() {
			p.N = 400
			m := meniscus.New()
			m.Solver.Stepper = integrators.NewEuler()
			coarse, err := m.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			fine, err := meniscus.Solve(p)
			Expect(err).NotTo(HaveOccurred())

			Expect(coarse.ZMin).NotTo(Equal(fine.ZMin))
			Expect(coarse.ZMin).To(BeNumerically("~", fine.ZMin, 0.01))
		})
	})

	Describe("concurrency", func() {
		It("gives identical results from parallel solves", func() {
			const workers = 8
			results := make([]*meniscus.Profile, workers)
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(idx int) {
					defer GinkgoRecover()
					defer wg.Done()
					prof, err := meniscus.Solve(p)
					Expect(err).NotTo(HaveOccurred())
					results[idx] = prof
				}(i)
			}
			wg.Wait()

			for _, r := range results[1:] {
				Expect(r.ZMin).To(Equal(results[0].ZMin))
				Expect(r.Z).To(Equal(results[0].Z))
			}
		})
	})
})
