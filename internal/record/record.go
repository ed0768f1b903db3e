// Package record maps between database rows and the flat key/value
// fragments carried on the wire. Every entity kind has a Table describing
// its column order; the same order is used for decoding query results and
// for building full-row upserts.
package record

import (
	"strconv"
	"strings"
)

// Column pairs a wire field name with its database column name.
type Column struct {
	Wire string
	DB   string
}

// Table is the fixed schema of one entity kind. Key lists the database
// columns forming the unique key; an empty Key means rows are append-only.
type Table struct {
	Name    string
	Columns []Column
	Key     []string
}

// Fragment is a flat wire-field -> value map for a single row.
type Fragment map[string]string

var (
	Account = Table{
		Name: "account",
		Columns: []Column{
			{"username", "username"},
			{"type", "account_type"},
			{"reverse", "password_reversed"},
		},
		Key: []string{"username", "account_type"},
	}

	PatientInfo = Table{
		Name: "patient_info",
		Columns: []Column{
			{"username", "username"},
			{"name", "name"},
			{"gender", "gender"},
			{"birthday", "birthday"},
			{"id", "national_id"},
			{"phoneNumber", "phone_number"},
			{"email", "email"},
		},
		Key: []string{"username"},
	}

	DoctorInfo = Table{
		Name: "doctor_info",
		Columns: []Column{
			{"username", "username"},
			{"name", "name"},
			{"id", "staff_id"},
			{"department", "department"},
			{"cost", "cost"},
			{"begin", "begin_hour"},
			{"end", "end_hour"},
			{"limit", "daily_limit"},
		},
		Key: []string{"username"},
	}

	// NameList is the two-column shape returned by the patient roster query.
	// Decode only; it is not a real table.
	NameList = Table{
		Name: "",
		Columns: []Column{
			{"username", "username"},
			{"name", "name"},
		},
	}

	Appointment = Table{
		Name: "appointment",
		Columns: []Column{
			{"patientUsername", "patient_username"},
			{"doctorUsername", "doctor_username"},
			{"date", "visit_date"},
			{"time", "visit_time"},
			{"cost", "cost"},
			{"status", "status"},
		},
		Key: []string{"patient_username", "doctor_username", "visit_date", "visit_time"},
	}

	CaseRecord = Table{
		Name: "case_record",
		Columns: []Column{
			{"patientUsername", "patient_username"},
			{"doctorUsername", "doctor_username"},
			{"date", "visit_date"},
			{"time", "visit_time"},
			{"main", "chief_complaint"},
			{"now", "present_history"},
			{"past", "past_history"},
			{"check", "exam_findings"},
			{"diagnose", "diagnosis"},
		},
		Key: []string{"patient_username", "doctor_username", "visit_date", "visit_time"},
	}

	Advice = Table{
		Name: "advice",
		Columns: []Column{
			{"patientUsername", "patient_username"},
			{"doctorUsername", "doctor_username"},
			{"date", "visit_date"},
			{"time", "visit_time"},
			{"medicine", "medicine"},
			{"check", "exam_orders"},
			{"therapy", "therapy"},
			{"care", "care"},
		},
		Key: []string{"patient_username", "doctor_username", "visit_date", "visit_time"},
	}

	// Notice rows append; the same notice posted twice shows up twice.
	Notice = Table{
		Name: "notice",
		Columns: []Column{
			{"username", "username"},
			{"type", "recipient_type"},
			{"message", "message"},
			{"time", "sent_at"},
		},
	}

	// Work rows append. Attendance aggregation takes the per-day maximum,
	// so duplicate clock-ins for one day are harmless.
	Work = Table{
		Name: "work",
		Columns: []Column{
			{"username", "username"},
			{"date", "work_date"},
			{"status", "status"},
		},
	}

	Question = Table{
		Name: "question",
		Columns: []Column{
			{"name", "name"},
			{"gender", "gender"},
			{"age", "age"},
			{"height", "height"},
			{"weight", "weight"},
			{"heart", "heart_rate"},
			{"pressure", "blood_pressure"},
			{"lung", "lung_capacity"},
		},
	}
)

// SelectList returns the comma-separated database column list in wire order.
func (t Table) SelectList() string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.DB
	}
	return strings.Join(cols, ", ")
}

// Row converts a fragment into the ordered value list for a full-row write.
// If any column is absent the descriptive failure string "no [<field>]" is
// returned and the values are nil.
func (t Table) Row(frag Fragment) ([]string, string) {
	vals := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		v, ok := frag[c.Wire]
		if !ok {
			return nil, "no [" + c.Wire + "]"
		}
		vals[i] = v
	}
	return vals, ""
}

// Decode zips the data rows of a query result (skipping the header row)
// against the table's wire field names. Short rows are ignored.
func (t Table) Decode(rows [][]string) []Fragment {
	if len(rows) <= 1 {
		return nil
	}
	out := make([]Fragment, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(t.Columns) {
			continue
		}
		frag := make(Fragment, len(t.Columns))
		for i, c := range t.Columns {
			frag[c.Wire] = row[i]
		}
		out = append(out, frag)
	}
	return out
}

// FromBody flattens a decoded JSON object into a fragment, coercing bare
// numbers and booleans to their string forms. Nested values are skipped.
func FromBody(obj map[string]any) Fragment {
	frag := make(Fragment, len(obj))
	for k, v := range obj {
		switch t := v.(type) {
		case string:
			frag[k] = t
		case float64:
			frag[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			frag[k] = strconv.FormatBool(t)
		}
	}
	return frag
}

// Digits parses a decimal digit string the way the legacy system did:
// each byte contributes (c XOR '0'), so non-digit input yields garbage
// rather than an error. Callers that need sane values validate the result.
func Digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]^'0')
	}
	return n
}
