package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type window struct {
	Date  string `validate:"required,isodate"`
	Start string `validate:"omitempty,hhmm"`
	Zone  string `validate:"omitempty,iana_tz"`
}

func TestCustomRules(t *testing.T) {
	v := validator.New()
	if err := RegisterOn(v, nil); err != nil {
		t.Fatalf("RegisterOn: %v", err)
	}

	cases := []struct {
		in window
		ok bool
	}{
		{window{Date: "2026-03-02", Start: "09:00"}, true},
		{window{Date: "2026-03-02"}, true},
		{window{Date: "2026-03-02", Start: "25:00"}, false},
		{window{Date: "2026-03-02", Start: "9am"}, false},
		{window{Date: "02/03/2026"}, false},
		{window{Date: "2026-03-02", Zone: "Europe/Lisbon"}, true},
		{window{Date: "2026-03-02", Zone: "Mars/Olympus"}, false},
		{window{}, false},
	}

	for _, tc := range cases {
		err := v.Struct(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("%+v: expected ok=%v, got %v", tc.in, tc.ok, err)
		}
	}
}
