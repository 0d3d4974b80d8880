package provision

// Stage is a provisioning checkpoint. Stages are one-way gates passed in
// the order of Stages.
type Stage string

const (
	StageEnvironmentReady      Stage = "environment-ready"
	StageContainerReady        Stage = "container-ready"
	StageProjectScaffolded     Stage = "project-scaffolded"
	StageConfigPatched         Stage = "config-patched"
	StageDependenciesInstalled Stage = "dependencies-installed"
	StageVhostWritten          Stage = "vhost-written"
	StageHostAliasRegistered   Stage = "host-alias-registered"
	StageProxyRestarted        Stage = "proxy-restarted"
)

// Stages lists every stage in order. EnvironmentReady is the starting
// state: settings and request are resolved and nothing has run yet.
var Stages = []Stage{
	StageEnvironmentReady,
	StageContainerReady,
	StageProjectScaffolded,
	StageConfigPatched,
	StageDependenciesInstalled,
	StageVhostWritten,
	StageHostAliasRegistered,
	StageProxyRestarted,
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// String returns the stage identifier.
func (s Stage) String() string {
	return string(s)
}
