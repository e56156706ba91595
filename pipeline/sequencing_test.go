// SPDX-License-Identifier: MIT
package pipeline_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lunapnr/pnrcore/pipeline"
)

var _ = Describe("Pipeline stage sequencing", func() {
	var (
		mu    sync.Mutex
		calls []string
		track = func(name string) pipeline.StageFunc {
			return func(report func(int)) error {
				mu.Lock()
				calls = append(calls, name)
				mu.Unlock()
				report(50)
				return nil
			}
		}
	)

	BeforeEach(func() {
		mu.Lock()
		calls = nil
		mu.Unlock()
	})

	It("runs every stage once, in declared order, and posts a done-ok event per stage", func() {
		p, err := pipeline.New(
			pipeline.Stage{Name: "a", Run: track("a")},
			pipeline.Stage{Name: "b", Run: track("b")},
			pipeline.Stage{Name: "c", Run: track("c")},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.RunUpTo("c")).To(Succeed())

		var seen []pipeline.Event
		for len(seen) == 0 || seen[len(seen)-1].Stage != "c" || seen[len(seen)-1].State != pipeline.StateDoneOK {
			seen = append(seen, p.Events().Pop())
		}

		mu.Lock()
		defer mu.Unlock()
		Expect(calls).To(Equal([]string{"a", "b", "c"}))

		var okStages []string
		for _, ev := range seen {
			if ev.State == pipeline.StateDoneOK {
				okStages = append(okStages, ev.Stage)
			}
		}
		Expect(okStages).To(Equal([]string{"a", "b", "c"}))
	})

	It("abandons an in-flight run's later stages once a newer RunUpTo takes over", func() {
		gate := make(chan struct{})
		started := make(chan struct{}, 2)

		p, err := pipeline.New(
			pipeline.Stage{Name: "a", Run: func(report func(int)) error {
				started <- struct{}{}
				<-gate
				mu.Lock()
				calls = append(calls, "a")
				mu.Unlock()
				return nil
			}},
			pipeline.Stage{Name: "b", Run: track("b")},
			pipeline.Stage{Name: "c", Run: track("c")},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(p.RunUpTo("c")).To(Succeed())
		Eventually(started).Should(Receive())

		// a second RunUpTo takes over before the first generation's "a"
		// has even returned; once gate opens, generation one must not
		// go on to run "b" or "c".
		Expect(p.RunUpTo("c")).To(Succeed())
		close(gate)

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), calls...)
		}).Should(Equal([]string{"a", "a", "b", "c"}))

		status, err := p.Status("c")
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(pipeline.StatusDoneOK))
	})
})
