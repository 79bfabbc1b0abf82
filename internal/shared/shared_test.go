package shared

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{name: "basic", input: "Song Title", want: "song title"},
		{name: "extra whitespace", input: "  Song   Title  ", want: "song title"},
		{name: "mixed case", input: "SoNg TiTlE", want: "song title"},
		{name: "parenthesized feat", input: "Song A (feat. B)", want: "song a"},
		{name: "bracketed ft", input: "Song A [ft. B & C]", want: "song a"},
		{name: "featuring in the middle", input: "Song (featuring X) Remix", want: "song remix"},
		{name: "bare feat", input: "Artist feat. Other", want: "artist"},
		{name: "bare featuring", input: "Artist featuring Other People", want: "artist"},
		{name: "ft inside a word is kept", input: "Left Behind", want: "left behind"},
		{name: "curly apostrophe", input: "Don’t Stop", want: "don't stop"},
		{name: "backtick apostrophe", input: "Rock `n Roll", want: "rock 'n roll"},
		{name: "tabs and newlines", input: "a\t\tb\nc", want: "a b c"},
		{name: "decomposed accent", input: "Beyonce\u0301", want: "beyonc\u00e9"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
		{name: "non-feature parentheses kept", input: "Song (Live)", want: "song (live)"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Song A (feat. B)",
		"  MIXED   Case ’quote’ ",
		"Artist ft. Someone (feat. Another)",
		"(fea(ft x)turing y) tail",
		"a (fe(feat. x)at. b)",
		"Beyoncé [featuring Jay-Z]",
		"plain",
		"",
		"e[featfeaturing(e]\u0301",
		"\u0301a(ftFEAT’)\u0301feat",
		"e (feat. x)\u0301",
		"a\u0301 ft. b",
	}

	if got := Normalize("e[featfeaturing(e]\u0301"); got != "\u00e9" {
		t.Errorf("expected a composed é after stripping, got %q", got)
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			title:  "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "features dropped on both sides",
			title:  "Song A (feat. B)",
			artist: "Artist ft. C",
			want:   "song a|artist",
		},
		{
			name:   "empty artist",
			title:  "Song",
			artist: "",
			want:   "song|",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrackKey(tt.title, tt.artist).String()
			if got != tt.want {
				t.Errorf("NormalizeTrackKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	b, _ := GenerateState()

	if a == b {
		t.Error("expected distinct state tokens")
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("state %q is not URL safe", a)
	}
}

func TestBrowserCommand(t *testing.T) {
	original := getRuntime
	defer func() { getRuntime = original }()

	tests := []struct {
		name     string
		goos     string
		browser  string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{name: "darwin", goos: "darwin", wantName: "open", wantArgs: []string{"https://x"}},
		{name: "linux", goos: "linux", wantName: "xdg-open", wantArgs: []string{"https://x"}},
		{name: "windows", goos: "windows", wantName: "rundll32", wantArgs: []string{"url.dll,FileProtocolHandler", "https://x"}},
		{name: "BROWSER wins", goos: "plan9", browser: "firefox --new-tab", wantName: "firefox", wantArgs: []string{"--new-tab", "https://x"}},
		{name: "unsupported", goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BROWSER", tt.browser)
			getRuntime = func() string { return tt.goos }

			name, args, err := browserCommand("https://x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("browserCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.wantName || strings.Join(args, " ") != strings.Join(tt.wantArgs, " ") {
				t.Errorf("browserCommand() = %s %v, want %s %v", name, args, tt.wantName, tt.wantArgs)
			}
		})
	}
}
