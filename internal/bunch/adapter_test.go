package bunch_test

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/picbunch/internal/bunch"
	"github.com/san-kum/picbunch/internal/momentum"
	"github.com/san-kum/picbunch/internal/profile"
)

var _ = Describe("Adapter", func() {
	var params bunch.Parameters

	BeforeEach(func() {
		params = bunch.Parameters{
			RMSBunchSize:       1e-6,
			CentroidPosition:   r3.Vec{X: 1e-5, Y: 2e-5, Z: 3e-5},
			CentroidVelocity:   r3.Vec{Z: 3e9},
			RMSVelocity:        r3.Vec{X: 1e5, Y: 2e5, Z: 3e5},
			NPhysicalParticles: 1e9,
		}
	})

	Describe("RMSVelocitySI", func() {
		It("returns the rms velocity verbatim", func() {
			Expect(bunch.NewAdapter(params).RMSVelocitySI()).To(Equal(r3.Vec{X: 1e5, Y: 2e5, Z: 3e5}))
		})

		It("passes the no-temperature sentinel through", func() {
			params.RMSVelocity = r3.Vec{}
			Expect(bunch.NewAdapter(params).RMSVelocitySI()).To(Equal(r3.Vec{}))
		})
	})

	Describe("DensityProfile", func() {
		It("normalizes the peak density to the particle count", func() {
			prof, err := bunch.NewAdapter(params).DensityProfile()
			Expect(err).NotTo(HaveOccurred())

			// (2*pi*1e-12)^1.5 = 1.574960994572242e-17
			want := 1e9 / 1.574960994572242e-17
			Expect(prof.MaxDensitySI).To(BeNumerically("~", want, want*1e-9))
		})

		DescribeTable("matches N / (2 pi sigma^2)^1.5",
			func(sigma, n float64) {
				params.RMSBunchSize = sigma
				params.NPhysicalParticles = n
				prof, err := bunch.NewAdapter(params).DensityProfile()
				Expect(err).NotTo(HaveOccurred())

				want := n / math.Pow(2*math.Pi*sigma*sigma, 1.5)
				Expect(prof.MaxDensitySI).To(BeNumerically("~", want, math.Abs(want)*1e-9))
			},
			Entry("micron bunch", 1e-6, 1e9),
			Entry("millimeter bunch", 1e-3, 6.24e10),
			Entry("unit bunch", 1.0, 1.0),
			Entry("empty bunch", 5e-6, 0.0),
		)

		It("integrates to the particle count", func() {
			params.RMSBunchSize = 1
			params.NPhysicalParticles = 1000
			prof, err := bunch.NewAdapter(params).DensityProfile()
			Expect(err).NotTo(HaveOccurred())

			// A Gaussian integrates to peak * (sqrt(2*pi)*sigma)^3.
			Expect(prof.MaxDensitySI * math.Pow(math.Sqrt(2*math.Pi), 3)).To(BeNumerically("~", 1000, 1e-9))
		})

		It("copies size and centroid", func() {
			prof, err := bunch.NewAdapter(params).DensityProfile()
			Expect(err).NotTo(HaveOccurred())
			Expect(prof.RMSBunchSizeSI).To(Equal(1e-6))
			Expect(prof.CentroidPositionSI).To(Equal(r3.Vec{X: 1e-5, Y: 2e-5, Z: 3e-5}))
		})

		It("is always unbounded", func() {
			for _, sigma := range []float64{1e-9, 1, 1e3} {
				params.RMSBunchSize = sigma
				prof, err := bunch.NewAdapter(params).DensityProfile()
				Expect(err).NotTo(HaveOccurred())

				lo, hi := profile.Unbounded()
				Expect(prof.LowerBound).To(Equal(lo))
				Expect(prof.UpperBound).To(Equal(hi))
				Expect(math.IsInf(prof.LowerBound.X, -1)).To(BeTrue())
				Expect(math.IsInf(prof.UpperBound.Z, 1)).To(BeTrue())
			}
		})

		It("rejects a zero bunch size", func() {
			params.RMSBunchSize = 0
			prof, err := bunch.NewAdapter(params).DensityProfile()
			Expect(err).To(MatchError(bunch.ErrDegenerateBunchSize))
			Expect(prof).To(BeNil())

			var perr *bunch.ProfileError
			Expect(err).To(BeAssignableToTypeOf(perr))
		})
	})

	Describe("Drift", func() {
		It("is absent for a centroid at rest", func() {
			negZero := math.Copysign(0, -1)
			for _, v := range []r3.Vec{{}, {X: negZero}, {X: negZero, Y: negZero, Z: negZero}} {
				params.CentroidVelocity = v
				drift, err := bunch.NewAdapter(params).Drift()
				Expect(err).NotTo(HaveOccurred())
				Expect(drift).To(BeNil(), "velocity %v", v)
			}
		})

		It("is present for any non-zero component", func() {
			for _, v := range []r3.Vec{{X: 1e-300}, {X: 1e-310}, {Y: -1}, {Z: 3e9}, {Z: 1e200}} {
				params.CentroidVelocity = v
				drift, err := bunch.NewAdapter(params).Drift()
				Expect(err).NotTo(HaveOccurred())
				Expect(drift).NotTo(BeNil())
				Expect(drift.Check()).To(Succeed(), "velocity %v", v)
			}
		})

		It("is built from the gamma velocity", func() {
			drift, err := bunch.NewAdapter(params).Drift()
			Expect(err).NotTo(HaveOccurred())

			want, err := momentum.NewDriftFromGammaVelocity(r3.Vec{Z: 3e9})
			Expect(err).NotTo(HaveOccurred())
			Expect(drift).To(Equal(want))
			Expect(drift.Direction.Z).To(BeNumerically("~", 1, 1e-15))
			Expect(drift.Gamma).To(BeNumerically(">", 10))
		})
	})

	It("is idempotent and safe for concurrent use", func() {
		a := bunch.NewAdapter(params)
		first, err := a.DensityProfile()
		Expect(err).NotTo(HaveOccurred())
		firstDrift, err := a.Drift()
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup
		profiles := make([]*profile.GaussianBunch, 8)
		drifts := make([]*momentum.Drift, 8)
		for i := range profiles {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				profiles[idx], _ = a.DensityProfile()
				drifts[idx], _ = a.Drift()
			}(i)
		}
		wg.Wait()

		for i := range profiles {
			Expect(profiles[i]).To(Equal(first))
			Expect(drifts[i]).To(Equal(firstDrift))
		}
		Expect(a.RMSVelocitySI()).To(Equal(a.RMSVelocitySI()))
		Expect(a.Parameters()).To(Equal(params))
	})
})
