package config

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Port: 3000}, false},
		{"port zero", Config{Port: 0}, true},
		{"port too big", Config{Port: 70000}, true},
		{"both line creds", Config{Port: 3000, LineChannelSecret: "s", LineChannelToken: "t"}, false},
		{"secret only", Config{Port: 3000, LineChannelSecret: "s"}, true},
		{"token only", Config{Port: 3000, LineChannelToken: "t"}, true},
		{"good default id", Config{Port: 3000, DefaultVideoID: "dQw4w9WgXcQ"}, false},
		{"bad default id", Config{Port: 3000, DefaultVideoID: "short"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENABLE_YOUTUBE_SEARCH", "true")
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "")
	t.Setenv("DEFAULT_VIDEO_ID", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("SILENT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || !cfg.SearchEnabled || cfg.LineEnabled() {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "notaport")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
