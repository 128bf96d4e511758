package main

import (
	"schoolsdb/cmd/schoolsdb/commands"
	"schoolsdb/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
