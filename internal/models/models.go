package models

// ActivationRecord is one submitted activation, stored as an 18-column row
// in the REKAPAN sheet. Records are append-only; the sheet is the source of
// truth and is never mutated or deleted by the bot.
type ActivationRecord struct {
	Tanggal      string `json:"tanggal"`
	Channel      string `json:"channel"`
	Workorder    string `json:"workorder"`
	AO           string `json:"ao"`
	SCOrderNo    string `json:"sc_order_no"`
	ServiceNo    string `json:"service_no"`
	CustomerName string `json:"customer_name"`
	Workzone     string `json:"workzone"`
	ContactPhone string `json:"contact_phone"`
	ODP          string `json:"odp"`
	Symptom      string `json:"symptom"`
	Memo         string `json:"memo"`
	Tikor        string `json:"tikor"`
	SNOnt        string `json:"sn_ont"`
	NIKOnt       string `json:"nik_ont"`
	STBID        string `json:"stb_id"`
	NIKStb       string `json:"nik_stb"`
	Teknisi      string `json:"teknisi"`
}

// RecordHeader is the fixed column order of the REKAPAN sheet.
var RecordHeader = []string{
	"TANGGAL", "CHANNEL", "WORKORDER", "AO", "SC_ORDER_NO", "SERVICE_NO",
	"CUSTOMER_NAME", "WORKZONE", "CONTACT_PHONE", "ODP", "SYMPTOM", "MEMO",
	"TIKOR", "SN_ONT", "NIK_ONT", "STB_ID", "NIK_STB", "TEKNISI",
}

// Column indexes used when reading raw sheet rows.
const (
	ColTanggal  = 0
	ColChannel  = 1
	ColAO       = 3
	ColWorkzone = 7
	ColTeknisi  = 17
)

func (r ActivationRecord) Row() []string {
	return []string{
		r.Tanggal, r.Channel, r.Workorder, r.AO, r.SCOrderNo, r.ServiceNo,
		r.CustomerName, r.Workzone, r.ContactPhone, r.ODP, r.Symptom, r.Memo,
		r.Tikor, r.SNOnt, r.NIKOnt, r.STBID, r.NIKStb, r.Teknisi,
	}
}

// RecordFromRow rebuilds a record from a sheet row. Short rows are allowed;
// missing trailing cells become empty fields.
func RecordFromRow(row []string) ActivationRecord {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return ActivationRecord{
		Tanggal:      cell(0),
		Channel:      cell(1),
		Workorder:    cell(2),
		AO:           cell(3),
		SCOrderNo:    cell(4),
		ServiceNo:    cell(5),
		CustomerName: cell(6),
		Workzone:     cell(7),
		ContactPhone: cell(8),
		ODP:          cell(9),
		Symptom:      cell(10),
		Memo:         cell(11),
		Tikor:        cell(12),
		SNOnt:        cell(13),
		NIKOnt:       cell(14),
		STBID:        cell(15),
		NIKStb:       cell(16),
		Teknisi:      cell(17),
	}
}

// RosterEntry is an active row from the MASTER sheet.
type RosterEntry struct {
	Handle string
	Role   string
	Status string
}

func (e RosterEntry) IsAdmin() bool {
	return e.Role == "ADMIN"
}
