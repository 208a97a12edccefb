package lib

var Commands = map[string]func(){}

var Args = map[string]any{}
