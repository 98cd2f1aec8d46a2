package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type GameInfo struct {
	ID             string
	Title          string
	Description    string
	Kind           string
	DefaultMinutes int
	TimeoutMS      int
}

type PlayInput struct {
	PluginName string
	GameID     string
	InputJSON  string
	Player     string
	SessionID  string
	DataDir    string
	Cwd        string
	Env        map[string]string
}

// PlayOutput carries both the raw plugin result and what the activity ledger
// recorded for it.
type PlayOutput struct {
	PluginName string
	GameID     string
	Kind       string
	Score      int
	Minutes    int
	LoggedAs   string
	ResultID   string
	Stdout     string
	OutputJSON string
	ExitCode   int
}

type ReportInput struct {
	Kind    string
	Score   int
	Minutes int
}

type TTYPrepareInput struct {
	PluginName string
	GameID     string
	InputJSON  string
	Player     string
	SessionID  string
	DataDir    string
	Cwd        string
	Env        map[string]string
}

type TTYPrepareOutput struct {
	PluginName string
	GameID     string
	Argv       []string
	Cwd        string
	Env        map[string]string
}
