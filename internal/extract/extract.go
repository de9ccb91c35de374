// Package extract turns a labeled free-text activation report into a
// structured record. Label matching is profile-driven; fields that stay empty
// after label matching go through a fixed fallback chain.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/rekapan-quality/bot/internal/dates"
	"github.com/rekapan-quality/bot/internal/models"
)

type Field string

const (
	FieldTanggal      Field = "TANGGAL"
	FieldChannel      Field = "CHANNEL"
	FieldWorkorder    Field = "WORKORDER"
	FieldAO           Field = "AO"
	FieldSCOrderNo    Field = "SC_ORDER_NO"
	FieldServiceNo    Field = "SERVICE_NO"
	FieldCustomerName Field = "CUSTOMER_NAME"
	FieldWorkzone     Field = "WORKZONE"
	FieldContactPhone Field = "CONTACT_PHONE"
	FieldODP          Field = "ODP"
	FieldSymptom      Field = "SYMPTOM"
	FieldMemo         Field = "MEMO"
	FieldTikor        Field = "TIKOR"
	FieldSNOnt        Field = "SN_ONT"
	FieldNIKOnt       Field = "NIK_ONT"
	FieldSTBID        Field = "STB_ID"
	FieldNIKStb       Field = "NIK_STB"

	// Extended fields only the fulfillment profile knows. They are not part
	// of the 18-column row but stay available to callers via Fields.
	FieldNCLI        Field = "NCLI"
	FieldAddress     Field = "ADDRESS"
	FieldBookingDate Field = "BOOKING_DATE"
	FieldPaket       Field = "PAKET"
	FieldPackage     Field = "PACKAGE"
	FieldMitra       Field = "MITRA"
)

type Rule struct {
	Field   Field
	Pattern *regexp.Regexp
}

// Profile is a declarative label-to-field table. Both profiles share one
// extraction path; the source system had two near-duplicate parsers instead.
type Profile struct {
	Name  string
	Rules []Rule
}

// label builds the line-scoped matcher for one label. The label part may
// contain \s* between words; the value runs to end of line and is trimmed by
// the caller.
func label(field Field, pattern string) Rule {
	return Rule{Field: field, Pattern: regexp.MustCompile(`(?i)` + pattern + `\s*:\s*([^\n]+)`)}
}

var baseRules = []Rule{
	label(FieldChannel, `CHANNEL`),
	label(FieldWorkorder, `WORKORDER`),
	label(FieldAO, `AO`),
	label(FieldSCOrderNo, `SC\s*ORDER\s*NO`),
	label(FieldServiceNo, `SERVICE\s*NO`),
	label(FieldCustomerName, `CUSTOMER\s*NAME`),
	label(FieldWorkzone, `WORKZONE`),
	label(FieldContactPhone, `CONTACT\s*PHONE`),
	label(FieldODP, `ODP`),
	label(FieldSymptom, `SYMPTOM`),
	label(FieldMemo, `MEMO`),
	label(FieldTikor, `TIKOR`),
	label(FieldSNOnt, `SN\s*ONT`),
	label(FieldNIKOnt, `NIK\s*ONT`),
	label(FieldSTBID, `STB\s*ID`),
	label(FieldNIKStb, `NIK\s*STB`),
}

// Activation is the profile used by /aktivasi submissions.
var Activation = Profile{Name: "aktivasi", Rules: baseRules}

// Fulfillment extends the activation labels with the fulfillment-ticket
// variant fields, including an explicit creation date.
var Fulfillment = Profile{
	Name: "fulfillment",
	Rules: append([]Rule{
		label(FieldTanggal, `DATE\s*CREATED`),
		label(FieldNCLI, `NCLI`),
		label(FieldAddress, `ADDRESS`),
		label(FieldBookingDate, `BOOKING\s*DATE`),
		label(FieldPaket, `PAKET`),
		label(FieldPackage, `PACKAGE`),
		label(FieldMitra, `MITRA`),
	}, baseRules...),
}

// ontVendorPrefixes are the known optical-terminal serial prefixes. The SN
// fallback takes the first match anywhere in the text, in text order.
var ontVendorPrefixes = []string{"ZTEG", "HWTC", "HUAW", "FHTT", "FIBR"}

var (
	snFallbackPattern = regexp.MustCompile(`(?i)((?:` + strings.Join(ontVendorPrefixes, "|") + `)[A-Z0-9]+)`)
	scFallbackPattern = regexp.MustCompile(`(?i)\b(SC\d{6,})\b`)
)

type Fields map[Field]string

// Parse applies the profile's label rules to text. Each field takes the first
// line-scoped occurrence of its label; unmatched fields are absent from the
// result.
func (p Profile) Parse(text string) Fields {
	out := make(Fields, len(p.Rules))
	for _, rule := range p.Rules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			out[rule.Field] = v
		}
	}
	return out
}

// Extract parses text with the profile and builds a complete record. Every
// field gets a defined value; malformed input never fails, it just leaves
// fields empty. The caller still has to validate AO before persisting.
//
// Extraction is pure given text, entry, username, and now (the default
// creation date when the text carries none).
func Extract(p Profile, text string, entry *models.RosterEntry, username string, now time.Time) models.ActivationRecord {
	f := p.Parse(text)

	rec := models.ActivationRecord{
		Tanggal:      f[FieldTanggal],
		Channel:      f[FieldChannel],
		Workorder:    f[FieldWorkorder],
		AO:           f[FieldAO],
		SCOrderNo:    f[FieldSCOrderNo],
		ServiceNo:    f[FieldServiceNo],
		CustomerName: f[FieldCustomerName],
		Workzone:     f[FieldWorkzone],
		ContactPhone: f[FieldContactPhone],
		ODP:          f[FieldODP],
		Symptom:      f[FieldSymptom],
		Memo:         f[FieldMemo],
		Tikor:        f[FieldTikor],
		SNOnt:        f[FieldSNOnt],
		NIKOnt:       f[FieldNIKOnt],
		STBID:        f[FieldSTBID],
		NIKStb:       f[FieldNIKStb],
	}

	if rec.Tanggal == "" {
		rec.Tanggal = dates.FormatLong(now)
	}

	// Fallback chain, in this order only for fields still empty.
	if rec.SNOnt == "" {
		if m := snFallbackPattern.FindStringSubmatch(text); m != nil {
			rec.SNOnt = m[1]
		}
	}
	if rec.SCOrderNo == "" {
		if m := scFallbackPattern.FindStringSubmatch(text); m != nil {
			rec.SCOrderNo = m[1]
		}
	}
	if rec.AO == "" && rec.SCOrderNo != "" {
		rec.AO = rec.SCOrderNo
	}
	if rec.Workorder == "" && rec.AO != "" {
		rec.Workorder = rec.AO
	}

	rec.Teknisi = technicianIdentity(entry, username)
	return rec
}

func technicianIdentity(entry *models.RosterEntry, username string) string {
	if entry != nil && entry.Handle != "" {
		return strings.TrimPrefix(entry.Handle, "@")
	}
	return strings.TrimPrefix(username, "@")
}
