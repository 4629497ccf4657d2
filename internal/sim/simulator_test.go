package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/avelk/pendlab/internal/integrators"
	"github.com/avelk/pendlab/internal/pendulum"
	"github.com/avelk/pendlab/internal/sim"
)

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                        { return "count" }
func (c *countingMetric) Observe(s pendulum.State, t float64) { c.count++ }
func (c *countingMetric) Value() float64                      { return float64(c.count) }
func (c *countingMetric) Reset()                              { c.count = 0 }

var _ = Describe("Simulator", func() {
	var (
		params pendulum.Params
		s      *sim.Simulator
	)

	BeforeEach(func() {
		params = pendulum.DefaultParams()
		var err error
		s, err = sim.New(params, integrators.RK4{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects invalid parameters at construction", func() {
		bad := params
		bad.M2 = -1
		_, err := sim.New(bad, integrators.RK4{})
		Expect(err).To(MatchError(pendulum.ErrParams))
	})

	It("rejects non-positive dt and duration", func() {
		x0 := pendulum.State{Theta1: 0.5}
		for _, cfg := range []sim.Config{
			{Dt: 0, Duration: 1},
			{Dt: -0.01, Duration: 1},
			{Dt: 0.01, Duration: 0},
		} {
			_, err := s.Run(context.Background(), x0, cfg)
			Expect(err).To(MatchError(sim.ErrConfig))
		}
	})

	It("records steps+1 states at fixed times", func() {
		res, err := s.Run(context.Background(), pendulum.State{Theta1: 0.5},
			sim.Config{Dt: 0.1, Duration: 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(11))
		Expect(res.Times).To(HaveLen(11))
		Expect(res.Times[10]).To(BeNumerically("~", 1.0, 1e-9))
		Expect(res.StepsTaken).To(Equal(10))
	})

	It("keeps energy drift small with rk4", func() {
		res, err := s.Run(context.Background(), pendulum.State{Theta1: 1.0},
			sim.Config{Dt: 0.01, Duration: 10.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EnergyDrift).To(BeNumerically("<", 0.01))
	})

	It("feeds metrics once per step and reports them", func() {
		m := &countingMetric{}
		s.AddMetric(m)

		res, err := s.Run(context.Background(), pendulum.State{Theta1: 0.5},
			sim.Config{Dt: 0.1, Duration: 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKeyWithValue("count", 10.0))
	})

	It("stops on context cancellation with a partial result", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := s.Run(ctx, pendulum.State{Theta1: 0.5},
			sim.Config{Dt: 0.01, Duration: 10.0})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.States).NotTo(BeEmpty())
	})

	It("halts on non-finite state when validation is on", func() {
		x0 := pendulum.State{Theta1: math.Inf(1)}
		res, err := s.Run(context.Background(), x0,
			sim.Config{Dt: 0.01, Duration: 1.0, ValidateState: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Errors).NotTo(BeEmpty())
		Expect(res.StepsTaken).To(BeZero())
	})

	It("supports early exit from RunWithCallback", func() {
		calls := 0
		err := s.RunWithCallback(context.Background(), pendulum.State{Theta1: 0.5},
			sim.Config{Dt: 0.01, Duration: 10.0},
			func(x pendulum.State, t float64) bool {
				calls++
				return calls < 5
			})
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(5))
	})
})

var _ = Describe("Session", func() {
	It("owns and replaces a single state per step", func() {
		x0 := pendulum.State{Theta1: 1.0}
		sess, err := sim.NewSession(pendulum.DefaultParams(), integrators.RK4{}, x0)
		Expect(err).NotTo(HaveOccurred())

		first := sess.Step(0.01)
		Expect(first).NotTo(Equal(x0))
		Expect(sess.State()).To(Equal(first))
		Expect(sess.Time()).To(BeNumerically("~", 0.01, 1e-12))

		sess.Reset()
		Expect(sess.State()).To(Equal(x0))
		Expect(sess.Time()).To(BeZero())
	})

	It("rejects invalid live parameter updates", func() {
		sess, err := sim.NewSession(pendulum.DefaultParams(), integrators.RK4{}, pendulum.State{})
		Expect(err).NotTo(HaveOccurred())

		bad := sess.Params()
		bad.L1 = 0
		Expect(sess.SetParams(bad)).To(MatchError(pendulum.ErrParams))

		good := sess.Params()
		good.L1 = 2
		Expect(sess.SetParams(good)).To(Succeed())
		Expect(sess.Params().L1).To(Equal(2.0))
	})
})

var _ = Describe("Sweep", func() {
	It("runs perturbed initial conditions in parallel, preserving order", func() {
		build := func() (*sim.Simulator, error) {
			return sim.New(pendulum.DefaultParams(), integrators.RK4{})
		}

		x0s := sim.PerturbTheta1(pendulum.State{Theta1: 1.0}, 4, 1e-6)
		Expect(x0s[3].Theta1).To(BeNumerically("~", 1.0+3e-6, 1e-12))

		results, err := sim.NewSweep(build).Run(context.Background(), x0s,
			sim.Config{Dt: 0.01, Duration: 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))

		// Unperturbed member must reproduce a solo run exactly.
		solo, err := build()
		Expect(err).NotTo(HaveOccurred())
		ref, err := solo.Run(context.Background(), x0s[0], sim.Config{Dt: 0.01, Duration: 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(results[0].States[len(results[0].States)-1]).
			To(Equal(ref.States[len(ref.States)-1]))
	})
})
