package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/pushmodel/pushmodel"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var profile = flag.String("pgo", "default.pgo", "write a CPU profile here, empty disables")

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkMarkDirty(false)

	benchmarkMarkDirty(true)
	benchmarkGetDriverState(true)
	benchmarkSweep(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	dd    = []int{1, 4, 16}
	props = 64
	iters = 100
)

func key(i int) pushmodel.ObjectKey {
	return pushmodel.ObjectKey{Index: uint32(i), Serial: 1}
}

func populate(w, d int) (*pushmodel.Manager, [][]pushmodel.NetDriverHandle) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	handles := make([][]pushmodel.NetDriverHandle, w)
	for i := 0; i < w; i++ {
		for j := 0; j < d; j++ {
			h, err := m.AddNetworkObject(key(i), props)
			if err != nil {
				log.Panic(err)
			}
			handles[i] = append(handles[i], h)
		}
	}
	return m, handles
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func benchmarkMarkDirty(shouldRender bool) {
	tbl := newTable("MarkDirty every property of every object")

	for _, w := range ww {
		for _, d := range dd {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			m, _ := populate(w, d)

			for i := 0; i < iters; i++ {
				start := time.Now()
				for o := 0; o < w; o++ {
					for p := 0; p < props; p++ {
						m.MarkDirty(key(o), pushmodel.PropertyIndex(p))
					}
				}
				tach.AddTime(time.Since(start))
			}
			appendCalc(tbl, fmt.Sprintf("mark: %d objects * %d drivers", w, d), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkGetDriverState(shouldRender bool) {
	tbl := newTable("Flush and consume per driver state")

	for _, w := range ww {
		for _, d := range dd {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			m, handles := populate(w, d)

			for i := 0; i < iters; i++ {
				for o := 0; o < w; o++ {
					m.MarkDirtyRange(key(o), 0, pushmodel.PropertyIndex(props/2))
				}

				start := time.Now()
				for _, hs := range handles {
					for _, h := range hs {
						state, ok := m.GetDriverState(h)
						if !ok {
							log.Panicf("no state for %s", h)
						}
						state.DirtyProperties().ForEach(func(int) bool { return true })
						state.ClearAll()
					}
				}
				tach.AddTime(time.Since(start))
			}
			appendCalc(tbl, fmt.Sprintf("flush: %d objects * %d drivers", w, d), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkSweep(shouldRender bool) {
	tbl := newTable("Sweep with half the objects released")

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters; i++ {
			m, handles := populate(w, 1)
			for o := 0; o < w; o += 2 {
				m.RemoveNetworkObject(handles[o][0])
			}

			start := time.Now()
			m.PostGarbageCollect()
			tach.AddTime(time.Since(start))
		}
		appendCalc(tbl, fmt.Sprintf("sweep: %d objects", w), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
