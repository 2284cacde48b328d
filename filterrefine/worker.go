package filterrefine

import (
	"context"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/mine"
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/transaction"
	"github.com/timtadh/gspan/types/graph"
)

// Partition deals graphs round robin into n parts.
func Partition(graphs []*graph.Graph, n int) [][]*graph.Graph {
	if n < 1 {
		n = 1
	}
	parts := make([][]*graph.Graph, n)
	for i, g := range graphs {
		parts[i%n] = append(parts[i%n], g)
	}
	return parts
}

// Report is what a worker says about one code after mining its partition.
// Frequent is true when the code is frequent within the partition.
type Report struct {
	Worker   int
	Code     dfs.Compressed
	Support  int
	Frequent bool
}

// Worker mines one partition. Size counts every graph of the partition,
// including graphs that could not be encoded.
type Worker struct {
	Id      int
	Size    int
	config  *config.Config
	miner   *mine.Miner
	decoder *dfs.Decoder
	txs     []*transaction.Transaction
}

func NewWorker(id int, conf *config.Config, enc *transaction.Encoder, decoder *dfs.Decoder, part []*graph.Graph) (*Worker, error) {
	m, err := mine.NewMiner(conf)
	if err != nil {
		return nil, err
	}
	txs, _ := enc.EncodeAll(part)
	return &Worker{
		Id:      id,
		Size:    len(part),
		config:  conf,
		miner:   m,
		decoder: decoder,
		txs:     txs,
	}, nil
}

// Filter mines the partition with the local minimum count. It reports every
// locally frequent code and every other counted code whose local support
// reaches Likeliness times the partition size.
func (w *Worker) Filter(ctx context.Context) ([]Report, error) {
	minCount := support.MinCount(w.config.MinSupport, w.Size)
	likely := w.config.Likeliness * float64(w.Size)
	var reports []Report
	_, err := w.miner.Run(ctx, w.txs, minCount, func(round int, counts *support.Counts, frequent *support.Frequent) {
		counts.Each(func(c dfs.Code, n int) {
			if frequent.Has(c) {
				reports = append(reports, Report{Worker: w.Id, Code: dfs.Compress(c), Support: n, Frequent: true})
			} else if float64(n) >= likely {
				reports = append(reports, Report{Worker: w.Id, Code: dfs.Compress(c), Support: n})
			}
		})
	})
	if err != nil {
		return nil, err
	}
	errors.Logf("DEBUG", "worker %d filtered %d transactions into %d reports", w.Id, len(w.txs), len(reports))
	return reports, nil
}

// Refine computes the exact local support of each code by searching the
// partition directly. Codes that do not decode are logged and skipped.
func (w *Worker) Refine(ctx context.Context, codes []dfs.Compressed) ([]Report, error) {
	grower := w.miner.Grower()
	reports := make([]Report, 0, len(codes))
	for _, z := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := w.decoder.Decode(z)
		if err != nil {
			errors.Logf("ERROR", "worker %d cannot refine: %v", w.Id, err)
			continue
		}
		n := 0
		for _, tx := range w.txs {
			if grower.Supports(tx, c) {
				n++
			}
		}
		reports = append(reports, Report{Worker: w.Id, Code: z, Support: n})
	}
	return reports, nil
}
