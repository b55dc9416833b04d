package main

import "devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/cmd"

func main() {
	cmd.Execute()
}
