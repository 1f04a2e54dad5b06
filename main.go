package main

import (
	_ "embed"

	"github.com/Nicoding1996/momentum-notes-sub000/cmd"
)

//go:embed config/config.yaml
var c string

// @title           Momentum Graph Service API
// @version         1.0
// @description     笔记知识图谱同步与推理服务 API

// @securityDefinitions.apikey SessionAuthToken
// @in header
// @name token

func main() {
	cmd.Execute(c)
}
