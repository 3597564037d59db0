// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestNoopByDefault(t *testing.T) {
	// before initialization the facade must swallow everything
	if _, ok := metrics.(*noopMetrics); ok {
		assert.Nil(t, HTTPHandler())
		Counter("noop_count").Add(1)
		Gauge("noop_gauge").Set(42)
		Histogram("noop_hist", BucketHTTPReqs).Observe(10)
	}
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := Counter("count1")
	countVec := CounterVec("count_vec1", []string{"outcome"})
	hist := Histogram("hist1", BucketHTTPReqs)
	gauge := Gauge("gauge1")

	count.Add(3)
	hist.Observe(25)
	gauge.Set(7)
	for i := 0; i < 4; i++ {
		countVec.AddWithLabel(1, map[string]string{"outcome": strconv.Itoa(i % 2)})
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		byName[family.GetName()] = family
	}

	counter, ok := byName[namespace+"_count1"]
	require.True(t, ok)
	assert.Equal(t, float64(3), counter.GetMetric()[0].GetCounter().GetValue())

	gaugeFamily, ok := byName[namespace+"_gauge1"]
	require.True(t, ok)
	assert.Equal(t, float64(7), gaugeFamily.GetMetric()[0].GetGauge().GetValue())

	histFamily, ok := byName[namespace+"_hist1"]
	require.True(t, ok)
	assert.Equal(t, uint64(1), histFamily.GetMetric()[0].GetHistogram().GetSampleCount())

	vecFamily, ok := byName[namespace+"_count_vec1"]
	require.True(t, ok)
	assert.Len(t, vecFamily.GetMetric(), 2)

	assert.NotNil(t, HTTPHandler())
}

func TestLazyLoadResolvesOnce(t *testing.T) {
	loader := LazyLoadCounter("lazy_count1")
	assert.Same(t, loader(), loader())
}
