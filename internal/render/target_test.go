package render

import "testing"

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{
			"valid copy",
			Target{Name: "statusbar", Strategy: StrategyCopy, Source: "colors-waybar.css", Destination: "/tmp/colors.css"},
			false,
		},
		{
			"valid template",
			Target{Name: "lockscreen", Strategy: StrategyTemplate, Template: "lockscreen.conf", Destination: "/tmp/hyprlock.conf"},
			false,
		},
		{
			"valid key-patch",
			Target{Name: "desktop", Strategy: StrategyKeyPatch, Destination: "/tmp/kdeglobals", Keys: map[string]string{"BackgroundNormal": "background"}},
			false,
		},
		{
			"missing name",
			Target{Strategy: StrategyCopy, Source: "a", Destination: "/tmp/a"},
			true,
		},
		{
			"unknown strategy",
			Target{Name: "x", Strategy: "symlink", Destination: "/tmp/a"},
			true,
		},
		{
			"missing destination",
			Target{Name: "x", Strategy: StrategyCopy, Source: "a"},
			true,
		},
		{
			"copy without source",
			Target{Name: "x", Strategy: StrategyCopy, Destination: "/tmp/a"},
			true,
		},
		{
			"template without template",
			Target{Name: "x", Strategy: StrategyTemplate, Destination: "/tmp/a"},
			true,
		},
		{
			"key-patch without keys",
			Target{Name: "x", Strategy: StrategyKeyPatch, Destination: "/tmp/a"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStrategy_Valid(t *testing.T) {
	for _, s := range []Strategy{StrategyCopy, StrategyTemplate, StrategyKeyPatch} {
		if !s.Valid() {
			t.Errorf("Strategy(%q).Valid() = false, want true", s)
		}
	}
	if Strategy("inheritance").Valid() {
		t.Error(`Strategy("inheritance").Valid() = true, want false`)
	}
}
