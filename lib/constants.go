package lib

type Mode uint

const (
	ModeUnknown  Mode = 0
	ModeGenerate Mode = 1
	ModeExtract  Mode = 2
)
