package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/cgm-simulator/internal/config"
)

func main() {
	fmt.Println("🔍 Проверка конфигурации...")

	// Загружаем .env файл если есть
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env файл не найден: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Ошибка валидации конфигурации:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация валидна!")
	fmt.Printf("📋 Детали конфигурации:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - DB: %s@%s:%s/%s (sslmode=%s)\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName, cfg.DB.SSLMode)
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s:%s\n", cfg.Redis.Host, cfg.Redis.Port)
	} else {
		fmt.Printf("  - Redis: <не используется, состояние в памяти>\n")
	}
	fmt.Printf("  - Metrics: %s\n", orDisabled(cfg.MetricsAddr))
	fmt.Printf("  - Log: level=%v output=%s format=%s\n", cfg.Logger.Level, cfg.Logger.OutputPath, cfg.Logger.Format)

	sim := cfg.Simulation
	fmt.Printf("📈 Симуляция:\n")
	fmt.Printf("  - Интервал: %v\n", sim.Interval)
	fmt.Printf("  - Максимум часов: %d\n", sim.MaxHours)
	fmt.Printf("  - Устройство: %s\n", sim.DeviceID)
	if sim.Seed != 0 {
		fmt.Printf("  - Seed: %d\n", sim.Seed)
	} else {
		fmt.Printf("  - Seed: <случайный>\n")
	}
	fmt.Printf("  - Строгий режим: %t\n", sim.Strict)
	fmt.Printf("  - Превью: %d\n", sim.PreviewSize)
}

func maskToken(token string) string {
	if token == "" {
		return "<не установлен>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func orDisabled(addr string) string {
	if addr == "" {
		return "<отключено>"
	}
	return addr
}
