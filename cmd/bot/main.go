package main

import (
	"log"

	"github.com/joho/godotenv"

	"jeepfest-bot/bot"
	"jeepfest-bot/core/cmd"
)

func main() {
	// .env is optional; real deployments pass env directly.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(cfg cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return bot.New(cfg.(*bot.Config))
		},
	})
	if err != nil {
		log.Fatalf("bot exited: %v", err)
	}
}
