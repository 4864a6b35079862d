package types

import "testing"

func TestMaskOfAndContains(t *testing.T) {
	m := MaskOf(LayerEnemy, LayerGround)

	if !m.Contains(LayerEnemy) || !m.Contains(LayerGround) {
		t.Errorf("mask %v should contain enemy and ground", m)
	}
	if m.Contains(LayerPlayer) {
		t.Errorf("mask %v should not contain player", m)
	}
	if NoLayers.Contains(LayerDefault) {
		t.Error("NoLayers should not contain anything")
	}
	if !AllLayers.Contains(LayerProjectile) {
		t.Error("AllLayers should contain every layer")
	}
	if AllLayers.Without(LayerGround).Contains(LayerGround) {
		t.Error("Without(ground) should drop ground")
	}
}

func TestMaskFromNames(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    LayerMask
		wantErr bool
	}{
		{name: "single", input: []string{"enemy"}, want: MaskOf(LayerEnemy)},
		{name: "case and spaces", input: []string{" Player ", "GROUND"}, want: MaskOf(LayerPlayer, LayerGround)},
		{name: "everything", input: []string{"enemy", "all"}, want: AllLayers},
		{name: "empty", input: nil, want: NoLayers},
		{name: "unknown", input: []string{"water"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaskFromNames(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MaskFromNames(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("MaskFromNames(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
