package mine

import (
	"math/rand"
	"sync"
)

import (
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/transaction"
)

type workers struct {
	workers []*worker
	wg      sync.WaitGroup
}

func newWorkers(n int) *workers {
	if n < 1 {
		n = 1
	}
	wkrs := &workers{
		workers: make([]*worker, 0, n),
	}
	for i := 0; i < n; i++ {
		w := &worker{
			in: make(chan func()),
			wg: &wkrs.wg,
		}
		wkrs.wg.Add(1)
		go w.work()
		wkrs.workers = append(wkrs.workers, w)
	}
	return wkrs
}

func (w *workers) Stop() {
	workers := w.workers
	w.workers = nil
	for _, wrkr := range workers {
		close(wrkr.in)
	}
	w.wg.Wait()
}

// Do hands f to an idle worker, starting the search at a random worker. It
// blocks when every worker is busy.
func (w *workers) Do(f func()) {
	workers := w.workers
	offset := rand.Intn(len(workers))
	for i := 0; i < len(workers); i++ {
		j := (offset + i) % len(workers)
		wrkr := workers[j].in
		select {
		case wrkr <- f:
			return
		default:
		}
	}
	workers[offset].in <- f
}

// Each runs do over txs in chunks on the pool and returns the merged partial
// counts once every chunk is done.
func (w *workers) Each(txs []*transaction.Transaction, do func(*transaction.Transaction, *support.Counts)) *support.Counts {
	chunks := len(w.workers) * 4
	size := (len(txs) + chunks - 1) / chunks
	if size < 1 {
		size = 1
	}
	var partials []*support.Counts
	var wg sync.WaitGroup
	for start := 0; start < len(txs); start += size {
		end := start + size
		if end > len(txs) {
			end = len(txs)
		}
		chunk := txs[start:end]
		counts := support.NewCounts()
		partials = append(partials, counts)
		wg.Add(1)
		w.Do(func() {
			defer wg.Done()
			for _, tx := range chunk {
				do(tx, counts)
			}
		})
	}
	wg.Wait()
	total := support.NewCounts()
	for _, counts := range partials {
		total.Merge(counts)
	}
	return total
}

type worker struct {
	in chan func()
	wg *sync.WaitGroup
}

func (w *worker) work() {
	defer w.wg.Done()
	for f := range w.in {
		f()
	}
}
