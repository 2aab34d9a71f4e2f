package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

func init() {
	// Cria o diretório de logs se não existir
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatal("Falha ao criar diretório de logs:", err)
	}

	InfoLogger = log.New(openLogFile(logDir, "info.log"), "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(openLogFile(logDir, "error.log"), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(openLogFile(logDir, "debug.log"), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// openLogFile abre um arquivo de log em modo append
func openLogFile(dir, name string) *os.File {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("Falha ao abrir arquivo de log %s: %v", name, err)
	}
	return f
}

// LogInfo registra uma mensagem informativa
func LogInfo(format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	InfoLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogError registra uma mensagem de erro
func LogError(format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	ErrorLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogDebug registra uma mensagem de depuração
func LogDebug(format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	DebugLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogOperation registra uma operação com sua duração
func LogOperation(operation string, startTime time.Time, err error) {
	duration := time.Since(startTime)
	if err != nil {
		LogError("Operação %s falhou após %v: %v", operation, duration, err)
	} else {
		LogInfo("Operação %s concluída em %v", operation, duration)
	}
}
