package tuning

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wangyifan349/resolvboot/internal/errors"
	"github.com/wangyifan349/resolvboot/internal/mocks"
)

const applyCmd = "sysctl -p " + SysctlConfPath

func TestEnableAlreadyActive(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[CongestionParamPath] = []byte("bbr\n")
	loader := mocks.NewMockModuleLoader()

	state, err := NewEnabler(env, loader).Enable()
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !state.AlreadyEnabled {
		t.Error("expected AlreadyEnabled to be set")
	}
	if state.CurrentAlgorithm != "bbr" {
		t.Errorf("CurrentAlgorithm = %q, want bbr", state.CurrentAlgorithm)
	}
	if loader.LoadCalls != 0 {
		t.Errorf("module load attempted %d times, want 0", loader.LoadCalls)
	}
	if env.AppendLineIfAbsentCalls != 0 {
		t.Errorf("tuning file touched %d times, want 0", env.AppendLineIfAbsentCalls)
	}
	if env.RunCommandCalls != 0 {
		t.Errorf("commands run = %d, want 0 (%v)", env.RunCommandCalls, env.CommandLog)
	}
	if _, ok := env.Files[SysctlConfPath]; ok {
		t.Error("sysctl.conf was created on a no-op run")
	}
}

func TestEnableFromCubic(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[CongestionParamPath] = []byte("cubic\n")
	loader := mocks.NewMockModuleLoader()

	state, err := NewEnabler(env, loader).Enable()
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if state.AlreadyEnabled {
		t.Error("AlreadyEnabled set although the algorithm was cubic")
	}
	if loader.LoadCalls != 1 || loader.LoadedModules[0] != "tcp_bbr" {
		t.Errorf("loaded modules = %v, want exactly tcp_bbr", loader.LoadedModules)
	}
	if len(state.PersistedKeys) != len(TuningLines) {
		t.Errorf("persisted keys = %v, want %v", state.PersistedKeys, TuningLines)
	}

	content := string(env.Files[SysctlConfPath])
	for _, line := range TuningLines {
		if !strings.Contains(content, line+"\n") {
			t.Errorf("sysctl.conf misses %q:\n%s", line, content)
		}
	}
	if got := env.CommandsMatching("sysctl -p"); len(got) != 1 || got[0] != applyCmd {
		t.Errorf("apply commands = %v, want [%q]", got, applyCmd)
	}
}

func TestEnablePersistsLinesOnlyOnce(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[SysctlConfPath] = []byte("# managed by ops\nvm.swappiness=10\n")
	loader := mocks.NewMockModuleLoader()
	enabler := NewEnabler(env, loader)

	for run := 1; run <= 3; run++ {
		env.Files[CongestionParamPath] = []byte("cubic\n")
		state, err := enabler.Enable()
		if err != nil {
			t.Fatalf("run %d: Enable failed: %v", run, err)
		}
		if run > 1 && len(state.PersistedKeys) != 0 {
			t.Errorf("run %d: persisted %v again", run, state.PersistedKeys)
		}
	}

	content := string(env.Files[SysctlConfPath])
	for _, line := range TuningLines {
		if n := strings.Count(content, line+"\n"); n != 1 {
			t.Errorf("%q appears %d times, want 1:\n%s", line, n, content)
		}
	}
	if !strings.Contains(content, "vm.swappiness=10\n") {
		t.Errorf("pre-existing content lost:\n%s", content)
	}
}

func TestEnableModuleLoadFailureIsNonFatal(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[CongestionParamPath] = []byte("cubic\n")
	loader := mocks.NewMockModuleLoader()
	loader.LoadFunc = func(name string) error {
		return stderrors.New("modprobe: FATAL: Module tcp_bbr not found")
	}

	state, err := NewEnabler(env, loader).Enable()
	if err != nil {
		t.Fatalf("module-load failure must not abort, got: %v", err)
	}
	if len(state.PersistedKeys) != len(TuningLines) {
		t.Errorf("persisted keys = %v, want all of %v", state.PersistedKeys, TuningLines)
	}
	if got := env.CommandsMatching("sysctl -p"); len(got) != 1 {
		t.Errorf("apply commands = %v, want exactly one", got)
	}
}

func TestEnableApplyFailureIsFatal(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.Files[CongestionParamPath] = []byte("cubic\n")
	env.ScriptCommand(applyCmd, "sysctl: permission denied", stderrors.New("exit status 255"))

	_, err := NewEnabler(env, mocks.NewMockModuleLoader()).Enable()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !stderrors.Is(err, &errors.Error{Code: errors.ErrCodeCommandFailure}) {
		t.Errorf("expected COMMAND_FAILURE, got %v", err)
	}
	if errors.SeverityOf(err) != errors.SeverityFatal {
		t.Error("expected apply failure to be fatal")
	}
}

func TestCurrentAlgorithmReadFailure(t *testing.T) {
	env := mocks.NewMockEnvironment()
	env.ReadFileErr[CongestionParamPath] = stderrors.New("open: no such file or directory")

	_, err := NewEnabler(env, mocks.NewMockModuleLoader()).Enable()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !stderrors.Is(err, &errors.Error{Code: errors.ErrCodeFile}) {
		t.Errorf("expected FILE_ERROR, got %v", err)
	}
}
