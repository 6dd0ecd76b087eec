package distro

import (
	stderrors "errors"
	"testing"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/mocks"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name           string
		markers        []string
		expectedFamily Family
		expectError    bool
	}{
		{
			name:           "debian marker alone yields debian",
			markers:        []string{DebianMarker},
			expectedFamily: FamilyDebian,
		},
		{
			name:           "redhat marker alone yields redhat",
			markers:        []string{RedHatMarker},
			expectedFamily: FamilyRedHat,
		},
		{
			name:           "debian marker wins when both are present",
			markers:        []string{DebianMarker, RedHatMarker},
			expectedFamily: FamilyDebian,
		},
		{
			name:        "no marker is unsupported",
			markers:     nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := mocks.NewMockEnvironment()
			for _, marker := range tt.markers {
				env.Files[marker] = []byte("12.4\n")
			}

			profile, err := Detect(env)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error for unsupported host")
				}
				if !stderrors.Is(err, &errors.Error{Code: errors.ErrCodeUnsupportedDistro}) {
					t.Errorf("expected UNSUPPORTED_DISTRO, got %v", err)
				}
				if errors.SeverityOf(err) != errors.SeverityFatal {
					t.Error("expected unsupported host to be fatal")
				}
				return
			}

			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if profile.Family != tt.expectedFamily {
				t.Errorf("family = %v, want %v", profile.Family, tt.expectedFamily)
			}
		})
	}
}

func TestDetectDebianProfileCommands(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[DebianMarker] = []byte("12.4\n")

	profile, err := Detect(env)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if got := profile.UpdateCommand[0]; got != "apt-get" {
		t.Errorf("update command = %v, want apt-get front", profile.UpdateCommand)
	}
	if profile.UpdateCommand[1] != "update" {
		t.Errorf("update command = %v, want apt-get update", profile.UpdateCommand)
	}
	if len(profile.Packages) == 0 {
		t.Error("expected a non-empty package list")
	}
}

func TestDetectRedHatProfileCommands(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[RedHatMarker] = []byte("CentOS Stream release 9\n")

	profile, err := Detect(env)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if profile.UpdateCommand[0] != "yum" {
		t.Errorf("update command = %v, want yum front", profile.UpdateCommand)
	}
	if profile.InstallCommand[0] != "yum" {
		t.Errorf("install command = %v, want yum front", profile.InstallCommand)
	}
}

func TestFamilyString(t *testing.T) {
	if FamilyDebian.String() != "Debian" || FamilyRedHat.String() != "RedHat" || FamilyUnknown.String() != "Unknown" {
		t.Error("unexpected family names")
	}
}
