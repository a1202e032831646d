package model

// Config holds the application configuration stored in the config file.
type Config struct {
	DatabaseDir      string       `json:"database_dir"`
	DatabaseFile     string       `json:"database_file"`
	LogFolder        string       `json:"log_folder"`
	CommandLog       string       `json:"command_log"`
	ErrorLog         string       `json:"error_log"`
	InfoLog          string       `json:"info_log"`
	LogRotationHours int          `json:"log_rotation_hours"`
	HistoryFile      string       `json:"history_file"`
	DefaultAuthor    string       `json:"default_author"`
	ColorMode        string       `json:"color_mode"`
	View             ViewSettings `json:"view"`
}

// ViewSettings holds the default linearization options.
type ViewSettings struct {
	ShowEllipses      bool    `json:"show_ellipses"`
	CollapseRepeats   bool    `json:"collapse_repeats"`
	SeparateFormality bool    `json:"separate_formality"`
	DirectionBias     float64 `json:"direction_bias"`
	DepthThreshold    float64 `json:"depth_threshold"`
	SortMethod        string  `json:"sort_method"`
}
