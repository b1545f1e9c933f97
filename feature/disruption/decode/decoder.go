package decode

import (
	"fmt"
	"io"
	"sort"

	"disruption-sync/core/reconcile"

	"github.com/fxamacker/cbor/v2"
)

// Top-level keys of an event. The names are fixed by the producer's schema.
const (
	keyUpdate         = "update"
	keyNewDisruption  = "newDisruption"
	keyOrganizationID = "organizationId"
	keyIndustryID     = "industryId"
)

type organizationIDField struct {
	OrganizationID *string `cbor:"organizationId"`
}

type industryIDField struct {
	IndustryID *int64 `cbor:"industryId"`
}

type segmentRef struct {
	CompanyCategoryID *int64 `cbor:"companyCategoryId"`
}

// Lists are pointers so an absent key is told apart from an empty list.
type segmentRefs struct {
	IndustrySegmentIDs *[]segmentRef `cbor:"industrySegmentIds"`
}

type companyRef struct {
	CompanyID *int64 `cbor:"companyId"`
}

type companyRefs struct {
	CompanyIDs *[]companyRef `cbor:"companyIds"`
}

// disruption is the payload shared by both event kinds.
type disruption struct {
	IndustrySegmentIDs   *segmentRefs `cbor:"industrySegmentIds"`
	CompetitorCompanyIDs *companyRefs `cbor:"competitorCompanyIds"`
}

// Decoder turns one CBOR event into a reconcile.LogRecord.
type Decoder struct {
	dm cbor.DecMode
}

// NewDecoder creates a Decoder.
func NewDecoder() (*Decoder, error) {
	dm, err := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF, // Enforce unique keys
		IndefLength:     cbor.IndefLengthAllowed,
		MaxNestedLevels: 16,
		IntDec:          cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("create CBOR decoder: %w", err)
	}
	return &Decoder{dm: dm}, nil
}

// Decode reads the first CBOR data item of r and decodes it as an event.
//
// An event is recognized by its "update" or "newDisruption" key, "update" taking
// precedence when both are present. Events with neither key fail with
// *reconcile.UnrecognizedEventError; absent required fields fail with
// *reconcile.MissingFieldError.
func (d *Decoder) Decode(r io.Reader) (*reconcile.LogRecord, error) {
	var top map[string]cbor.RawMessage
	if err := d.dm.NewDecoder(r).Decode(&top); err != nil {
		return nil, fmt.Errorf("decode CBOR: %w", err)
	}

	var (
		kind reconcile.EventKind
		body cbor.RawMessage
	)
	if raw, ok := top[keyUpdate]; ok {
		kind, body = reconcile.KindUpdate, raw
	} else if raw, ok := top[keyNewDisruption]; ok {
		kind, body = reconcile.KindNewDisruption, raw
	} else {
		return nil, &reconcile.UnrecognizedEventError{Keys: sortedKeys(top)}
	}

	var payload disruption
	if err := d.dm.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}

	record := &reconcile.LogRecord{Kind: kind}

	if payload.IndustrySegmentIDs == nil {
		return nil, &reconcile.MissingFieldError{Path: kind.String() + ".industrySegmentIds"}
	}
	if payload.IndustrySegmentIDs.IndustrySegmentIDs == nil {
		return nil, &reconcile.MissingFieldError{Path: kind.String() + ".industrySegmentIds.industrySegmentIds"}
	}
	segments := *payload.IndustrySegmentIDs.IndustrySegmentIDs
	record.SegmentIDs = make([]int64, 0, len(segments))
	for i, ref := range segments {
		if ref.CompanyCategoryID == nil {
			return nil, &reconcile.MissingFieldError{Path: fmt.Sprintf("%s.industrySegmentIds.industrySegmentIds[%d].companyCategoryId", kind, i)}
		}
		record.SegmentIDs = append(record.SegmentIDs, *ref.CompanyCategoryID)
	}

	if payload.CompetitorCompanyIDs == nil {
		return nil, &reconcile.MissingFieldError{Path: kind.String() + ".competitorCompanyIds"}
	}
	if payload.CompetitorCompanyIDs.CompanyIDs == nil {
		return nil, &reconcile.MissingFieldError{Path: kind.String() + ".competitorCompanyIds.companyIds"}
	}
	companies := *payload.CompetitorCompanyIDs.CompanyIDs
	record.CompetitorIDs = make([]int64, 0, len(companies))
	for i, ref := range companies {
		if ref.CompanyID == nil {
			return nil, &reconcile.MissingFieldError{Path: fmt.Sprintf("%s.competitorCompanyIds.companyIds[%d].companyId", kind, i)}
		}
		record.CompetitorIDs = append(record.CompetitorIDs, *ref.CompanyID)
	}

	var org organizationIDField
	if err := d.field(top, keyOrganizationID, &org); err != nil {
		return nil, err
	}
	if org.OrganizationID == nil {
		return nil, &reconcile.MissingFieldError{Path: keyOrganizationID + ".organizationId"}
	}
	record.OrganizationID = *org.OrganizationID

	var industry industryIDField
	if err := d.field(top, keyIndustryID, &industry); err != nil {
		return nil, err
	}
	if industry.IndustryID == nil {
		return nil, &reconcile.MissingFieldError{Path: keyIndustryID + ".industryId"}
	}
	record.IndustryID = *industry.IndustryID

	return record, nil
}

// field decodes the top-level entry key into v.
func (d *Decoder) field(top map[string]cbor.RawMessage, key string, v any) error {
	raw, ok := top[key]
	if !ok {
		return &reconcile.MissingFieldError{Path: key}
	}
	if err := d.dm.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func sortedKeys(m map[string]cbor.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
