// Package journal records provisioning progress so an interrupted run can
// be resumed.
//
// Each project gets one TOML file under the environment root:
//
//	.laravel-maker/<name>.toml
//
// holding a run ID, the request that started the run, the list of completed
// stages and a chronological event history.
package journal
