package lib

import (
	"os"
	"strings"
	"time"
)

var doDebug = strings.ToLower(os.Getenv("DEBUG") + " ")[:1] == "y"

type Debug struct {
	start time.Time
	name  string
}

func (d *Debug) Log() {
	Logger.Println("debug:", d.name, time.Since(d.start))
}
