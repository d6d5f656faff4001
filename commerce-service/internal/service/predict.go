package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/catalog"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/classifier"
)

const topPredictions = 3

type Classifier interface {
	Classify(ctx context.Context, image string) ([]classifier.Prediction, error)
}

type ProductLookup interface {
	GetByName(ctx context.Context, name string) (domain.Product, error)
}

type PredictionResult struct {
	Prediction     string                  `json:"prediction"`
	Confidence     float64                 `json:"confidence"`
	Product        *domain.Product         `json:"product"`
	TopPredictions []classifier.Prediction `json:"top_predictions"`
	Timestamp      time.Time               `json:"timestamp"`
}

type PredictionService struct {
	classifier Classifier
	catalog    ProductLookup
	now        func() time.Time
}

// NewPredictionService accepts a nil classifier; Predict then fails with ErrClassifierNotConfigured.
func NewPredictionService(c Classifier, lookup ProductLookup) *PredictionService {
	return &PredictionService{classifier: c, catalog: lookup, now: time.Now}
}

func (s *PredictionService) Configured() bool {
	return s.classifier != nil
}

// Predict classifies a base64 image, optionally given as a data URL.
func (s *PredictionService) Predict(ctx context.Context, image string) (*PredictionResult, error) {
	if s.classifier == nil {
		return nil, ErrClassifierNotConfigured
	}

	payload, err := stripDataURL(image)
	if err != nil {
		return nil, err
	}

	preds, err := s.classifier.Classify(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return nil, classifier.ErrNoPredictions
	}

	top := preds[0]
	res := &PredictionResult{
		Prediction:     top.Name,
		Confidence:     top.Confidence,
		TopPredictions: preds[:min(topPredictions, len(preds))],
		Timestamp:      s.now().UTC(),
	}

	p, err := s.catalog.GetByName(ctx, top.Name)
	switch {
	case err == nil:
		res.Product = &p
	case !errors.Is(err, catalog.ErrProductNotFound):
		return nil, err
	}
	return res, nil
}

func stripDataURL(image string) (string, error) {
	image = strings.TrimSpace(image)
	if i := strings.IndexByte(image, ','); i >= 0 {
		image = image[i+1:]
	}
	if image == "" {
		return "", ErrInvalidImage
	}
	if _, err := base64.StdEncoding.DecodeString(image); err != nil {
		return "", errors.Join(ErrInvalidImage, err)
	}
	return image, nil
}
