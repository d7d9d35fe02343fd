package calibration

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edge_tokenizer_lines_total",
		Help: "Total number of lines read for calibration",
	})

	linesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "edge_tokenizer_lines_skipped_total",
		Help: "Total number of lines skipped because no token was found",
	})

	tokensMatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edge_tokenizer_tokens_matched_total",
		Help: "Total number of tokens matched, by scan direction",
	}, []string{"direction"})
)
