package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load подгружает .env (уже заданные переменные окружения не перезаписываются)
// и применяет флаги командной строки поверх окружения.
func Load(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return err
	}

	var portFlag, grpcPortFlag string
	flag.StringVar(&portFlag, "port", "", "HTTP server port (overrides PORT environment variable)")
	flag.StringVar(&grpcPortFlag, "grpc-port", "", "gRPC server port (overrides GRPC_PORT environment variable)")
	flag.Parse()

	overrides := map[string]string{
		"PORT":      portFlag,
		"GRPC_PORT": grpcPortFlag,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
