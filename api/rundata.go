package api

// RuntimeData describes a finished helper process, e.g. the compiler.
type RuntimeData struct {
	Stdout   string `json:"out"`
	Stderr   string `json:"err"`
	ExitCode int64  `json:"exit"`

	WallMillis int64 `json:"wall_ms"`
}
