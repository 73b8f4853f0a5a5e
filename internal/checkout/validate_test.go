package checkout

import (
	"encoding/json"
	"testing"
)

func TestValidateStep(t *testing.T) {
	cases := []struct {
		name  string
		step  Step
		form  string
		valid bool
		field string
		msg   string
	}{
		{"trip ok", StepTrip, `{"start_date":"2026-12-01","adults":2}`, true, "", ""},
		{"trip bad date", StepTrip, `{"start_date":"01/12/2026","adults":2}`, false, "start_date", "must be a date formatted YYYY-MM-DD"},
		{"trip no adults", StepTrip, `{"start_date":"2026-12-01","adults":0}`, false, "adults", "must be at least 1"},
		{"contact ok", StepContact, `{"first_name":"A","last_name":"B","email":"a@b.co","phone":"+2547000","country":"KE"}`, true, "", ""},
		{"contact email", StepContact, `{"first_name":"A","last_name":"B","email":"nope","phone":"+2547000","country":"KE"}`, false, "email", "must be a valid email address"},
		{"contact short phone", StepContact, `{"first_name":"A","last_name":"B","email":"a@b.co","phone":"12","country":"KE"}`, false, "phone", "is too short"},
		{"contact empty", StepContact, ``, false, "first_name", "is required"},
		{"travelers empty", StepTravelers, `{"travelers":[]}`, false, "travelers", "needs at least 1"},
		{"traveler name", StepTravelers, `{"travelers":[{"nationality":"KE"}]}`, false, "travelers[0].full_name", "is required"},
		{"terms", StepReview, `{"accept_terms":false}`, false, "accept_terms", "must be accepted"},
		{"terms ok", StepReview, `{"accept_terms":true}`, true, "", ""},
		{"unknown step", Step("payment"), `{}`, false, "step", "unknown checkout step"},
		{"malformed", StepContact, `[1,2]`, false, "form", "malformed form"},
	}

	for _, tc := range cases {
		res := ValidateStep(tc.step, json.RawMessage(tc.form))
		if res.IsValid != tc.valid {
			t.Fatalf("%s: expected valid=%v, got %+v", tc.name, tc.valid, res)
		}
		if tc.valid {
			if len(res.Errors) != 0 {
				t.Fatalf("%s: unexpected errors %v", tc.name, res.Errors)
			}
			continue
		}
		if res.Errors[tc.field] != tc.msg {
			t.Fatalf("%s: expected %s=%q, got %v", tc.name, tc.field, tc.msg, res.Errors)
		}
	}
}
