package domain

const (
	SetEngineCallbackPrefix  = "set_engine:"
	RepeatEditCallbackPrefix = "repeat_edit:"
)
