package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func initSecretsConfig() (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, err
	}

	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials prefers DB_USERNAME/DB_PASSWORD from the environment
// and falls back to the Secrets Manager entry named by secretID.
func retrieveCredentials(secretID string) (string, string, error) {
	secretUsername := os.Getenv("DB_USERNAME")
	secretPassword := os.Getenv("DB_PASSWORD")
	if secretUsername != "" && secretPassword != "" {
		return secretUsername, secretPassword, nil
	}

	secrets, err := initSecretsConfig()
	if err != nil {
		return "", "", err
	}
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"), // VersionStage defaults to AWSCURRENT if unspecified
	}

	result, err := secrets.GetSecretValue(context.TODO(), input)
	if err != nil {
		return "", "", err
	}

	var secret Credentials
	if err = json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("decode secret %s: %w", secretID, err)
	}

	return secret.Username, secret.Password, nil
}
