package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, label := range metric.GetLabel() {
				if want, ok := labels[label.GetName()]; ok && want == label.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestEngine_CompensationMetrics(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, service.TopupService, *prometheus.Registry) {
		f := newFixture(t)
		reg := prometheus.NewRegistry()
		svc := service.NewTopupService(f.topups, f.ledger, f.users, f.reconciliation, testConfig(),
			metrics.NewMetrics(reg), zap.NewNop())
		return f, svc, reg
	}

	compensations := func(status string) map[string]string {
		return map[string]string{"operation": "delete_topup", "status": status}
	}

	t.Run("first step failure compensates nothing", func(t *testing.T) {
		f, svc, reg := setup(t)
		topup := f.fund(t, 1, 100)
		f.saldos.updateErr = func(model.Saldo) error { return errors.New("disk full") }

		err := svc.DeleteTopup(ctx, topup.ID)

		require.Error(t, err)
		assert.Zero(t, counterValue(t, reg, "saldo_compensations_total", compensations("succeeded")))
		assert.Equal(t, float64(1), counterValue(t, reg, "saldo_operations_total",
			map[string]string{"operation": "delete_topup", "outcome": "rolled_back"}))
	})

	t.Run("undone steps are counted", func(t *testing.T) {
		f, svc, reg := setup(t)
		topup := f.fund(t, 1, 100)
		f.topups.deleteErr = errors.New("lock wait timeout")

		err := svc.DeleteTopup(ctx, topup.ID)

		require.Error(t, err)
		assert.Equal(t, float64(1), counterValue(t, reg, "saldo_compensations_total", compensations("succeeded")))
		assert.Equal(t, int64(100), f.balance(t, 1))
	})
}
