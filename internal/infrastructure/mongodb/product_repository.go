package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre MongoDB.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(coll *mongo.Collection) *ProductRepo {
	return &ProductRepo{coll: coll}
}

// Create persiste un nuevo producto del catálogo.
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	ctx, cancel := opContext()
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	var p entity.Product
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

// GetByIDs devuelve los productos de la lista de IDs. Hex inválidos o productos
// inexistentes simplemente se omiten del resultado.
func (r *ProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*entity.Product{}, nil
	}
	ctx, cancel := opContext()
	defer cancel()
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	defer cur.Close(ctx)
	var products []*entity.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// List lista productos con paginación y búsqueda por título (regex, case-insensitive).
func (r *ProductRepo) List(limit, skip int, search string) ([]*entity.Product, error) {
	filter := bson.M{}
	if search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	ctx, cancel := opContext()
	defer cancel()
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)
	var products []*entity.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// IncrementSold suma quantity al acumulado de vendidos del producto.
func (r *ProductRepo) IncrementSold(productID string, quantity int) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"sold": quantity}},
	)
	if err != nil {
		return fmt.Errorf("increment sold: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
