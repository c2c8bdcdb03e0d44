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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre MongoDB.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(coll *mongo.Collection) *UserRepo {
	return &UserRepo{coll: coll}
}

// Create persiste un nuevo usuario. El índice único de email traduce el duplicado
// a ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	ctx, cancel := opContext()
	defer cancel()
	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	var u entity.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// FindByID alias para GetByID.
func (r *UserRepo) FindByID(id string) (*entity.User, error) {
	return r.GetByID(id)
}

// GetByEmail obtiene un usuario por email; nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	ctx, cancel := opContext()
	defer cancel()
	var u entity.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// FindByEmail alias para GetByEmail.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.GetByEmail(email)
}

// IncrementCartQuantity suma 1 a la línea existente del producto usando el operador
// posicional; el filtro y la mutación son una sola operación atómica del documento.
func (r *UserRepo) IncrementCartQuantity(userID, productID string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	var u entity.User
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "cart.id": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment cart quantity: %w", err)
	}
	return &u, nil
}

// PushCartLine añade la línea solo si el producto no está ya en el carrito: el
// filtro $ne hace que dos push concurrentes del mismo producto no dupliquen línea.
func (r *UserRepo) PushCartLine(userID string, line entity.CartLine) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	var u entity.User
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "cart.id": bson.M{"$ne": line.ProductID}},
		bson.M{"$push": bson.M{"cart": line}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("push cart line: %w", err)
	}
	return &u, nil
}

// PullCartLine elimina la línea del producto; si no existía el documento queda igual.
func (r *UserRepo) PullCartLine(userID, productID string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	var u entity.User
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"cart": bson.M{"id": productID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("pull cart line: %w", err)
	}
	return &u, nil
}

// AppendHistoryAndClearCart anexa los registros al history y vacía el carrito en
// un único update del documento del usuario.
func (r *UserRepo) AppendHistoryAndClearCart(userID string, records []entity.PurchaseRecord) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"history": bson.M{"$each": records}},
			"$set":  bson.M{"cart": []entity.CartLine{}},
		},
	)
	if err != nil {
		return fmt.Errorf("append history and clear cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
