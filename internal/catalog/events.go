package catalog

const (
	// TopicProductCreated receives the created domain.Product.
	TopicProductCreated = "catalog:product:created"
	// TopicProductReplaced receives the stored domain.Product after a replace.
	TopicProductReplaced = "catalog:product:replaced"
	// TopicProductDeleted receives the deleted product id.
	TopicProductDeleted = "catalog:product:deleted"
)
