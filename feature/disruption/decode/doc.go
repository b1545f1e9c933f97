// Package decode reads disruption events from their CBOR encoding.
//
// An event file holds one CBOR map. Two shapes are recognized, distinguished only by
// the key the payload sits under:
//
//	{"update": P, "organizationId": {"organizationId": "..."}, "industryId": {"industryId": 7}}
//	{"newDisruption": P, "organizationId": ..., "industryId": ...}
//
// where P is
//
//	{"industrySegmentIds": {"industrySegmentIds": [{"companyCategoryId": 1}, ...]},
//	 "competitorCompanyIds": {"companyIds": [{"companyId": 10}, ...]}}
//
// The nested id lists are flattened, in payload order, into a reconcile.LogRecord.
// Unknown keys are ignored.
package decode
