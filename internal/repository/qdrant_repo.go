package repository

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// scrollCap bounds every full scan. The index is expected to stay in
	// the tens of thousands; exact-match lookups over a single bounded
	// scroll are acceptable at that scale.
	scrollCap = 10000
)

// QdrantConnectionConfig holds configuration for the Qdrant connection.
type QdrantConnectionConfig struct {
	Host            string
	Port            int
	Collection      string
	APIKey          string // Qdrant Cloud API key (enables TLS automatically)
	UseTLS          bool   // explicitly enable TLS without API key
	VectorDimension int
}

// apiKeyInterceptor adds the API key to outgoing request metadata.
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// QdrantRepository handles vector operations against a single collection.
type QdrantRepository struct {
	conn            *grpc.ClientConn
	pointsClient    pb.PointsClient
	collectClient   pb.CollectionsClient
	collectionName  string
	vectorDimension int
}

// NewQdrantRepository connects to Qdrant. Supports both local Qdrant
// (insecure) and Qdrant Cloud (TLS + API key).
func NewQdrantRepository(cfg *QdrantConnectionConfig) (*QdrantRepository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	vectorDimension := cfg.VectorDimension
	if vectorDimension <= 0 {
		vectorDimension = domain.EmbeddingDimensions
	}

	var opts []grpc.DialOption

	useTLS := cfg.UseTLS || cfg.APIKey != ""
	if useTLS {
		creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS13})
		opts = append(opts, grpc.WithTransportCredentials(creds))
		if cfg.APIKey != "" {
			opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
		}
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &QdrantRepository{
		conn:            conn,
		pointsClient:    pb.NewPointsClient(conn),
		collectClient:   pb.NewCollectionsClient(conn),
		collectionName:  cfg.Collection,
		vectorDimension: vectorDimension,
	}, nil
}

// Close closes the gRPC connection.
func (r *QdrantRepository) Close() error {
	return r.conn.Close()
}

// Collection returns the collection name this repository operates on.
func (r *QdrantRepository) Collection() string {
	return r.collectionName
}

// EnsureCollection creates the collection if it doesn't exist. Idempotent:
// an existing collection is left untouched (its dimensionality and metric
// are fixed at creation). Provisioning failures are classified so callers
// can distinguish denied access from a failed create.
func (r *QdrantRepository) EnsureCollection(ctx context.Context) error {
	_, err := r.collectClient.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collectionName,
	})
	if err == nil {
		return nil
	}

	if kind := classifyLookupError(err); kind != nil {
		return fmt.Errorf("%w: %v", kind, err)
	}

	_, err = r.collectClient.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collectionName,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(r.vectorDimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		if s, ok := status.FromError(err); ok && (s.Code() == codes.PermissionDenied || s.Code() == codes.Unauthenticated) {
			return fmt.Errorf("%w: %v", domain.ErrCollectionAccessDenied, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrCollectionCreationFailed, err)
	}

	return nil
}

// classifyLookupError maps a collection-info error to a sentinel kind.
// NotFound returns nil: the collection simply has to be created.
func classifyLookupError(err error) error {
	s, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("unexpected error checking collection: %v", err)
	}
	switch s.Code() {
	case codes.NotFound:
		return nil
	case codes.PermissionDenied, codes.Unauthenticated:
		return domain.ErrCollectionAccessDenied
	default:
		return fmt.Errorf("unexpected error checking collection: %v", err)
	}
}

// PhotoPayload is the metadata stored with each vector.
type PhotoPayload struct {
	Description string `json:"description"`
	SourcePath  string `json:"source_path"`
	DisplayName string `json:"display_name"`
}

// Upsert inserts or overwrites the point at id.
func (r *QdrantRepository) Upsert(ctx context.Context, id uint64, vector []float32, payload *PhotoPayload) error {
	points := []*pb.PointStruct{
		{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Num{Num: id},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: vector},
				},
			},
			Payload: map[string]*pb.Value{
				"description":  {Kind: &pb.Value_StringValue{StringValue: payload.Description}},
				"source_path":  {Kind: &pb.Value_StringValue{StringValue: payload.SourcePath}},
				"display_name": {Kind: &pb.Value_StringValue{StringValue: payload.DisplayName}},
			},
		},
	}

	_, err := r.pointsClient.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// StoredPhoto is one scanned record: point id plus payload.
type StoredPhoto struct {
	ID      uint64
	Payload *PhotoPayload
}

// ScrollAll returns every point in the collection up to limit, in the
// backend's native order. A limit <= 0 uses the default cap.
func (r *QdrantRepository) ScrollAll(ctx context.Context, limit uint32) ([]StoredPhoto, error) {
	if limit == 0 {
		limit = scrollCap
	}

	resp, err := r.pointsClient.Scroll(ctx, &pb.ScrollPoints{
		CollectionName: r.collectionName,
		Limit:          &limit,
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scroll collection: %w", err)
	}

	points := make([]StoredPhoto, 0, len(resp.Result))
	for _, p := range resp.Result {
		points = append(points, StoredPhoto{
			ID:      p.GetId().GetNum(),
			Payload: parsePayload(p.GetPayload()),
		})
	}
	return points, nil
}

// ScoredPhoto is one nearest-neighbor hit with its cosine similarity.
type ScoredPhoto struct {
	ID      uint64
	Score   float32
	Payload *PhotoPayload
}

// Search returns the k nearest points by cosine similarity, descending by
// score. Ties keep the backend's native order.
func (r *QdrantRepository) Search(ctx context.Context, vector []float32, k int) ([]ScoredPhoto, error) {
	resp, err := r.pointsClient.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collectionName,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]ScoredPhoto, len(resp.Result))
	for i, scored := range resp.Result {
		results[i] = ScoredPhoto{
			ID:      scored.GetId().GetNum(),
			Score:   scored.Score,
			Payload: parsePayload(scored.GetPayload()),
		}
	}
	return results, nil
}

func parsePayload(payload map[string]*pb.Value) *PhotoPayload {
	if payload == nil {
		return nil
	}
	p := &PhotoPayload{}
	if v, ok := payload["description"]; ok {
		p.Description = v.GetStringValue()
	}
	if v, ok := payload["source_path"]; ok {
		p.SourcePath = v.GetStringValue()
	}
	if v, ok := payload["display_name"]; ok {
		p.DisplayName = v.GetStringValue()
	}
	return p
}

// DeleteByIDs removes the given points. Removing a non-existent id is not
// an error.
func (r *QdrantRepository) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*pb.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = &pb.PointId{PointIdOptions: &pb.PointId_Num{Num: id}}
	}

	_, err := r.pointsClient.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collectionName,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{Ids: pointIDs},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// DropCollection removes the entire collection including its schema.
// Irreversible; confirmation is the caller's concern.
func (r *QdrantRepository) DropCollection(ctx context.Context) error {
	_, err := r.collectClient.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collectionName,
	})
	if err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return nil
}
