package jobpostings

import "testing"

func TestPlainText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: ""},
		{name: "plain", in: "Build   reliable\tservices", want: "Build reliable services"},
		{name: "blocks", in: "<p>Build <b>APIs</b></p><ul><li>Go</li><li>SQL</li></ul>", want: "Build APIs\nGo\nSQL"},
		{name: "breaks", in: "Line one<br>Line two<br/>", want: "Line one\nLine two"},
		{name: "scripts dropped", in: "<div>Apply now</div><script>alert(1)</script><style>p{}</style>", want: "Apply now"},
		{name: "entities", in: "<p>R&amp;D &lt;team&gt;</p>", want: "R&D <team>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlainText(tc.in); got != tc.want {
				t.Fatalf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
