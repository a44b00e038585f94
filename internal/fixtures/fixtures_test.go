package fixtures

import "testing"

func TestLoadPose(t *testing.T) {
	pose, err := LoadPose("open_palm")
	if err != nil {
		t.Fatalf("LoadPose failed: %v", err)
	}

	if pose.Name != "open_palm" {
		t.Errorf("name = %s, want open_palm", pose.Name)
	}
	if pose.Letter != "B" {
		t.Errorf("letter = %s, want B", pose.Letter)
	}
	if pose.FingerCount != 5 {
		t.Errorf("finger count = %d, want 5", pose.FingerCount)
	}
	if len(pose.Tips) != pose.FingerCount {
		t.Errorf("got %d tips for finger count %d", len(pose.Tips), pose.FingerCount)
	}
}

func TestLoadPose_Missing(t *testing.T) {
	if _, err := LoadPose("jazz_hands"); err == nil {
		t.Error("Expected error for missing pose")
	}
}

func TestPoses(t *testing.T) {
	poses, err := Poses()
	if err != nil {
		t.Fatalf("Poses failed: %v", err)
	}

	wantNames := []string{"curved_hand", "fist", "open_palm", "pointing", "thumb_out"}
	if len(poses) != len(wantNames) {
		t.Fatalf("got %d poses, want %d", len(poses), len(wantNames))
	}

	seen := make(map[string]bool)
	for i, pose := range poses {
		if pose.Name != wantNames[i] {
			t.Errorf("pose %d = %s, want %s", i, pose.Name, wantNames[i])
		}
		if seen[pose.Letter] {
			t.Errorf("letter %s appears in more than one pose", pose.Letter)
		}
		seen[pose.Letter] = true

		// Every tip stays inside the normalized frame.
		for _, tip := range pose.Tips {
			if tip.X < 0 || tip.X > 1 || tip.Y < 0 || tip.Y > 1 {
				t.Errorf("pose %s: tip (%f, %f) outside [0, 1]", pose.Name, tip.X, tip.Y)
			}
		}
	}
}
