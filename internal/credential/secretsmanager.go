package credential

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"BreakoutTrader/internal/errors"
)

// SecretsManagerAPI is the slice of the Secrets Manager client in use.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerStore reads a JSON Secret from AWS Secrets Manager.
type SecretsManagerStore struct {
	Client   SecretsManagerAPI
	SecretID string
}

// NewSecretsManagerStore loads the default AWS credential chain for region.
func NewSecretsManagerStore(ctx context.Context, region, secretID string) (*SecretsManagerStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "load aws config", err)
	}
	return &SecretsManagerStore{Client: secretsmanager.NewFromConfig(cfg), SecretID: secretID}, nil
}

func (s *SecretsManagerStore) Fetch(ctx context.Context) (Secret, error) {
	out, err := s.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(s.SecretID)})
	if err != nil {
		return Secret{}, errors.Wrapf(errors.ErrCodeCredentialUnavailable, err, "get secret %s", s.SecretID)
	}
	raw := aws.ToString(out.SecretString)
	if raw == "" {
		return Secret{}, errors.Newf(errors.ErrCodeCredentialUnavailable, "secret %s has no string value", s.SecretID)
	}
	var secret Secret
	if err := json.Unmarshal([]byte(raw), &secret); err != nil {
		return Secret{}, errors.Wrapf(errors.ErrCodeCredentialUnavailable, err, "decode secret %s", s.SecretID)
	}
	return secret, nil
}
