package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gobash/internal/executor"
	"gobash/internal/shell"
)

func main() {
	var scriptPath = flag.String("c", "", "执行命令字符串")
	var scriptFile = flag.String("f", "", "执行脚本文件")
	flag.Parse()

	sh := shell.New()

	// 执行命令字符串
	if *scriptPath != "" {
		reportAndExit(sh.ExecuteReader(strings.NewReader(*scriptPath)))
		return
	}

	// 执行脚本文件
	if *scriptFile != "" {
		reportAndExit(sh.ExecuteScript(*scriptFile))
		return
	}

	// 如果有命令行参数，作为脚本执行
	if len(os.Args) > 1 && os.Args[1][0] != '-' {
		reportAndExit(sh.ExecuteScript(os.Args[1]))
		return
	}

	// 交互式模式
	sh.Run()
}

// reportAndExit turns a script's own `exit N` into the process's exit
// code, and any other execution error into an error message + exit 1.
func reportAndExit(err error) {
	if err == nil {
		return
	}
	if exitErr, ok := err.(*executor.ScriptExitError); ok {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	os.Exit(1)
}
