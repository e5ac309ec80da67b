// Package keymap defines key bindings and action dispatch for the terminal client.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause           Action = "play_pause"
	ActionNextTrack           Action = "next_track"
	ActionPrevTrack           Action = "prev_track"
	ActionSeekForward         Action = "seek_forward"
	ActionSeekBack            Action = "seek_back"
	ActionVolumeUp            Action = "volume_up"
	ActionVolumeDown          Action = "volume_down"
	ActionTogglePlayerDisplay Action = "toggle_player_display"
	ActionCycleRepeat         Action = "cycle_repeat"
	ActionToggleShuffle       Action = "toggle_shuffle"
	ActionToggleLike          Action = "toggle_like"

	// Queue actions
	ActionFirstTrack    Action = "first_track"
	ActionLastTrack     Action = "last_track"
	ActionRemoveCurrent Action = "remove_current" // x - drop the playing entry
	ActionClear         Action = "clear"          // c - clear queue except playing

	// Session actions
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
)
