package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsCategorized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centsible_transactions_categorized_total",
		Help: "Transactions categorized, partitioned by routing bucket.",
	}, []string{"bucket"})

	patternsLearned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_patterns_learned_total",
		Help: "Learned merchant patterns saved.",
	})

	statementsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_statements_processed_total",
		Help: "Statements successfully processed.",
	})
)
