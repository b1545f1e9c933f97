package decode_test

import (
	"bytes"
	"errors"
	"testing"

	"disruption-sync/core/reconcile"
	"disruption-sync/feature/disruption/decode"
	"disruption-sync/feature/disruption/disruptiontest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDecoder(t *testing.T) *decode.Decoder {
	t.Helper()
	d, err := decode.NewDecoder()
	require.NoError(t, err)
	return d
}

func TestDecode_RecognizedTags(t *testing.T) {
	d := newDecoder(t)

	tests := []struct {
		name string
		tag  string
		kind reconcile.EventKind
	}{
		{"Update", "update", reconcile.KindUpdate},
		{"NewDisruption", "newDisruption", reconcile.KindNewDisruption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := disruptiontest.Event(tt.tag, "X", 7, []int64{2, 1, 2}, []int64{10, 30, 20})

			record, err := d.Decode(bytes.NewReader(disruptiontest.Encode(t, event)))
			require.NoError(t, err)

			assert.Equal(t, &reconcile.LogRecord{
				Kind:           tt.kind,
				OrganizationID: "X",
				IndustryID:     7,
				SegmentIDs:     []int64{2, 1, 2},
				CompetitorIDs:  []int64{10, 30, 20},
			}, record)
		})
	}
}

func TestDecode_EmptyLists(t *testing.T) {
	event := disruptiontest.Event("update", "X", 7, nil, nil)

	record, err := newDecoder(t).Decode(bytes.NewReader(disruptiontest.Encode(t, event)))
	require.NoError(t, err)

	assert.Empty(t, record.SegmentIDs)
	assert.Empty(t, record.CompetitorIDs)
}

func TestDecode_UpdateTakesPrecedence(t *testing.T) {
	event := disruptiontest.Event("update", "X", 7, []int64{1}, nil)
	other := disruptiontest.Event("newDisruption", "X", 7, []int64{99}, nil)
	event["newDisruption"] = other["newDisruption"]

	record, err := newDecoder(t).Decode(bytes.NewReader(disruptiontest.Encode(t, event)))
	require.NoError(t, err)

	assert.Equal(t, reconcile.KindUpdate, record.Kind)
	assert.Equal(t, []int64{1}, record.SegmentIDs)
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	event := disruptiontest.Event("newDisruption", "X", 7, []int64{1}, []int64{2})
	event["timestamp"] = int64(1700000000)

	record, err := newDecoder(t).Decode(bytes.NewReader(disruptiontest.Encode(t, event)))
	require.NoError(t, err)
	assert.Equal(t, "X", record.OrganizationID)
}

func TestDecode_Unrecognized(t *testing.T) {
	event := map[string]any{
		"deleteDisruption": map[string]any{},
		"organizationId":   map[string]any{"organizationId": "X"},
	}

	record, err := newDecoder(t).Decode(bytes.NewReader(disruptiontest.Encode(t, event)))

	assert.Nil(t, record)
	var unrecognized *reconcile.UnrecognizedEventError
	require.True(t, errors.As(err, &unrecognized))
	assert.Equal(t, []string{"deleteDisruption", "organizationId"}, unrecognized.Keys)
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(event map[string]any)
		path   string
	}{
		{
			name:   "OrganizationWrapper",
			mutate: func(event map[string]any) { delete(event, "organizationId") },
			path:   "organizationId",
		},
		{
			name:   "OrganizationValue",
			mutate: func(event map[string]any) { event["organizationId"] = map[string]any{} },
			path:   "organizationId.organizationId",
		},
		{
			name:   "IndustryValue",
			mutate: func(event map[string]any) { event["industryId"] = map[string]any{"id": 7} },
			path:   "industryId.industryId",
		},
		{
			name: "SegmentList",
			mutate: func(event map[string]any) {
				delete(event["update"].(map[string]any), "industrySegmentIds")
			},
			path: "update.industrySegmentIds",
		},
		{
			name: "SegmentListValue",
			mutate: func(event map[string]any) {
				event["update"].(map[string]any)["industrySegmentIds"] = map[string]any{}
			},
			path: "update.industrySegmentIds.industrySegmentIds",
		},
		{
			name: "CompetitorListValue",
			mutate: func(event map[string]any) {
				event["update"].(map[string]any)["competitorCompanyIds"] = map[string]any{"wrong": 1}
			},
			path: "update.competitorCompanyIds.companyIds",
		},
		{
			name: "CompetitorEntry",
			mutate: func(event map[string]any) {
				event["update"].(map[string]any)["competitorCompanyIds"] = map[string]any{
					"companyIds": []any{map[string]any{"companyId": 1}, map[string]any{"id": 2}},
				}
			},
			path: "update.competitorCompanyIds.companyIds[1].companyId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := disruptiontest.Event("update", "X", 7, []int64{1}, []int64{2})
			tt.mutate(event)

			_, err := newDecoder(t).Decode(bytes.NewReader(disruptiontest.Encode(t, event)))

			var missing *reconcile.MissingFieldError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, tt.path, missing.Path)
		})
	}
}

func TestDecode_NotCBOR(t *testing.T) {
	_, err := newDecoder(t).Decode(bytes.NewReader([]byte{0xff, 0x00}))
	assert.Error(t, err)
}

func TestDecode_OnlyFirstItem(t *testing.T) {
	first := disruptiontest.Encode(t, disruptiontest.Event("update", "X", 7, nil, nil))
	second := disruptiontest.Encode(t, disruptiontest.Event("update", "Y", 8, nil, nil))

	record, err := newDecoder(t).Decode(bytes.NewReader(append(first, second...)))
	require.NoError(t, err)
	assert.Equal(t, "X", record.OrganizationID)
}
