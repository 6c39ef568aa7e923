package collector

import "testing"

func TestCleanPayloadStripsControlAndNonASCII(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"\x00\x00{\"a\":1}\x00", "{\"a\":1}"},
		{"{\"a\":1}\r\n", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
		{"{\"pair\":\"EURUSDé\"}", "{\"pair\":\"EURUSD\"}"},
		{"\x01\x02{\"a\":1}\x1f", "{\"a\":1}"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanPayload([]byte(c.in)); got != c.want {
			t.Errorf("CleanPayload(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
