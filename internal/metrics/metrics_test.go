// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/popular", "200"))

	RecordAPIRequest("GET", "/api/v1/recommendations/popular", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/popular", "200"))
	if after != before+1 {
		t.Errorf("requests counter = %f, want %f", after, before+1)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues("hybrid", "fallback"))

	RecordRecommendation("hybrid", "fallback", 2*time.Millisecond)

	after := testutil.ToFloat64(RecommendationsServed.WithLabelValues("hybrid", "fallback"))
	if after != before+1 {
		t.Errorf("served counter = %f, want %f", after, before+1)
	}
}

func TestRecordInteraction(t *testing.T) {
	before := testutil.ToFloat64(InteractionsRecorded.WithLabelValues("purchase"))

	RecordInteraction("purchase")

	after := testutil.ToFloat64(InteractionsRecorded.WithLabelValues("purchase"))
	if after != before+1 {
		t.Errorf("interactions counter = %f, want %f", after, before+1)
	}
}

func TestRecordRebuild(t *testing.T) {
	RecordRebuild(2*time.Second, 7, 1500, nil)

	if got := testutil.ToFloat64(EngineGeneration); got != 7 {
		t.Errorf("generation gauge = %f, want 7", got)
	}
	if got := testutil.ToFloat64(EngineIndexedItems); got != 1500 {
		t.Errorf("indexed items gauge = %f, want 1500", got)
	}
}

func TestRecordRebuild_Error(t *testing.T) {
	errsBefore := testutil.ToFloat64(EngineRebuildErrors)
	RecordRebuild(time.Second, 99, 99, errors.New("empty catalog"))

	if got := testutil.ToFloat64(EngineRebuildErrors); got != errsBefore+1 {
		t.Errorf("rebuild errors = %f, want %f", got, errsBefore+1)
	}
	// Failed rebuilds must not advance the generation gauge.
	if got := testutil.ToFloat64(EngineGeneration); got == 99 {
		t.Error("failed rebuild advanced the generation gauge")
	}
}

func TestRecordDBQuery(t *testing.T) {
	errsBefore := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "catalog_items"))

	RecordDBQuery("SELECT", "catalog_items", time.Millisecond, nil)
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "catalog_items")); got != errsBefore {
		t.Errorf("successful query incremented error counter: %f", got)
	}

	RecordDBQuery("SELECT", "catalog_items", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "catalog_items")); got != errsBefore+1 {
		t.Errorf("error counter = %f, want %f", got, errsBefore+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("active requests = %f, want %f", got, base+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("active requests = %f, want %f", got, base)
	}
}
