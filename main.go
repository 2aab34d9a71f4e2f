package main

import (
	"fmt"
	"log"
	"time"

	"crediario/config"
	"crediario/controllers"
	"crediario/database"
	"crediario/middleware"
	"crediario/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Carrega a configuração
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	// Conecta ao banco de dados e aplica as migrações
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	// Serviços
	emailService := services.NewEmailService(cfg)
	creditorService := services.NewCreditorService(db.DB, emailService)
	carneService := services.NewCarneService(db.DB, emailService, creditorService)
	customerService := services.NewCustomerService(db.DB)
	productService := services.NewProductService(db.DB)
	saleService := services.NewSaleService(db.DB)
	userService := services.NewUserService(db.DB)

	// Varredura periódica de parcelas vencidas
	reminder := services.NewReminderService(db.DB, emailService,
		time.Duration(cfg.Reminder.IntervalHours)*time.Hour)
	reminder.Start()
	log.Println("Varredura de lembretes iniciada")

	// Controladores
	authController := controllers.NewAuthController(userService, cfg)
	creditorController := controllers.NewCreditorController(creditorService, carneService)
	customerController := controllers.NewCustomerController(customerService, creditorService)
	productController := controllers.NewProductController(productService)
	saleController := controllers.NewSaleController(saleService)
	reportController := controllers.NewReportController(db.DB)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimit())

	// Rotas públicas de autenticação
	router.POST("/api/auth/signUp", authController.SignUp)
	router.POST("/api/auth/signIn", authController.SignIn)

	// Rotas protegidas
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))

	// Clientes
	protected.POST("/customers", customerController.CreateCustomer)
	protected.GET("/customers", customerController.GetCustomers)
	protected.GET("/customers/:id", customerController.GetCustomer)
	protected.GET("/customers/:id/creditors", customerController.GetCustomerCreditors)
	protected.PUT("/customers/:id", customerController.UpdateCustomer)
	protected.DELETE("/customers/:id", customerController.DeleteCustomer)

	// Produtos
	protected.POST("/products", productController.CreateProduct)
	protected.GET("/products", productController.GetProducts)
	protected.GET("/products/:id", productController.GetProduct)
	protected.PUT("/products/:id", productController.UpdateProduct)
	protected.DELETE("/products/:id", productController.DeleteProduct)

	// Vendas
	protected.POST("/sales", saleController.CreateSale)
	protected.GET("/sales", saleController.GetSalesByCustomer)
	protected.GET("/sales/:id", saleController.GetSale)

	// Crediário
	protected.POST("/creditors", creditorController.CreateCreditor)
	protected.GET("/creditors", creditorController.GetCreditors)
	protected.GET("/creditors/:id", creditorController.GetCreditor)
	protected.GET("/creditors/:id/stats", creditorController.GetCreditorStats)
	protected.GET("/creditors/:id/installments", creditorController.GetInstallments)
	protected.POST("/creditors/:id/carne", creditorController.GenerateCarne)
	protected.GET("/creditors/:id/carne", creditorController.ExportCarne)
	protected.POST("/creditors/:id/carne/send", creditorController.SendCarne)
	protected.POST("/creditors/:id/pay", creditorController.PayCreditor)
	protected.DELETE("/creditors/:id", creditorController.DeleteCreditor)
	protected.POST("/installments/:id/pay", creditorController.PayInstallment)
	protected.PUT("/installments/:id/due-date", creditorController.EditInstallmentDueDate)

	// Painel
	protected.GET("/reports/summary", reportController.GetSummary)
	protected.GET("/reports/metrics", reportController.GetMetrics)

	// Inicia o servidor
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor iniciado na porta %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
}
