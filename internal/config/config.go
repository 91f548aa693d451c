package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is constructed once
// in main and passed by reference to the components that need it.
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	JWT        JWTConfig
	Razorpay   RazorpayConfig
	UPI        UPIConfig
	Cloudinary CloudinaryConfig
	R2         R2Config
	Email      EmailConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// RazorpayConfig holds Razorpay gateway credentials and fee parameters
type RazorpayConfig struct {
	KeyID      string
	KeySecret  string
	FeePercent float64
	GSTPercent float64
}

// UPIConfig holds the institute's UPI collection identity
type UPIConfig struct {
	VPA       string
	PayeeName string
}

// CloudinaryConfig holds Cloudinary credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// R2Config holds Cloudflare R2 (S3-compatible) credentials
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// EmailConfig holds outbound email configuration
type EmailConfig struct {
	SendgridAPIKey string
	FromAddress    string
	FromName       string
	MockEmail      bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()
	bindEnvAliases()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "5000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "sandhan")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Razorpay.FeePercent", 0.02)
	viper.SetDefault("Razorpay.GSTPercent", 0.18)
	viper.SetDefault("UPI.PayeeName", "Sandhan Institute")
	viper.SetDefault("Email.FromAddress", "noreply@sandhan.in")
	viper.SetDefault("Email.FromName", "Sandhan Institute")
	viper.SetDefault("Email.MockEmail", true)
	viper.SetDefault("LogLevel", "info")
}

// bindEnvAliases maps the flat environment variable names the deployment uses
// onto the nested config keys.
func bindEnvAliases() {
	viper.BindEnv("MongoDB.URI", "MONGO_URI")
	viper.BindEnv("JWT.Secret", "JWT_SECRET")
	viper.BindEnv("Razorpay.KeyID", "RAZORPAY_KEY_ID")
	viper.BindEnv("Razorpay.KeySecret", "RAZORPAY_SECRET")
	viper.BindEnv("UPI.VPA", "UPI_VPA")
	viper.BindEnv("Cloudinary.CloudName", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("Cloudinary.APIKey", "CLOUDINARY_API_KEY")
	viper.BindEnv("Cloudinary.APISecret", "CLOUDINARY_API_SECRET")
	viper.BindEnv("R2.AccountID", "CLOUDFLARE_R2_ACCOUNT_ID")
	viper.BindEnv("R2.AccessKeyID", "CLOUDFLARE_R2_ACCESS_KEY_ID")
	viper.BindEnv("R2.SecretAccessKey", "CLOUDFLARE_R2_SECRET_ACCESS_KEY")
	viper.BindEnv("R2.Bucket", "CLOUDFLARE_R2_BUCKET")
	viper.BindEnv("Email.SendgridAPIKey", "SENDGRID_API_KEY")
}
