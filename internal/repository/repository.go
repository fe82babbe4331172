package repository

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Store KVStore
	State StateRepository
}

// NewRepository 创建 Repository 聚合；store 由存储驱动决定
func NewRepository(store KVStore, namespace string) *Repository {
	return &Repository{
		Store: store,
		State: NewStateRepo(store, namespace),
	}
}
