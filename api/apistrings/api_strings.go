package apistrings

const (
	/// Basic User Related Strings
	UserNotFound         = "user or account does not exist"
	PermissionDenied     = "you do not have permission to perform this action"
	InvalidCustomerInput = "check 'email' or 'tag' keys, invalid request"
	ProfileFetched       = "Profile Fetched Successfully"
	CustomerCreated      = "Customer Created Successfully"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Wallet Related Strings
	InvalidWalletInput      = "check 'currency' or 'initial_balance' keys, invalid request"
	InvalidAmountInput      = "check 'currency' or 'amount' keys, invalid request"
	InvalidTransferInput    = "check 'to_customer_id', 'currency' or 'amount' keys, invalid request"
	InvalidWalletID         = "entered wallet ID is invalid"
	WalletCreated           = "User Wallet Created Successfully"
	WalletsFetched          = "User Wallets Fetched Successfully"
	WalletDeleted           = "User Wallet Deleted Successfully"
	BalanceFetched          = "Wallet Balance Fetched Successfully"
	BalanceUpdated          = "Wallet Balance Updated Successfully"
	TransferCompleted       = "Transfer Completed Successfully"
	TransactionsFetched     = "Wallet Transactions Fetched Successfully"
	InvalidCurrencyInput    = "check 'currency' query parameter, invalid request"

	/// Catalog Related Strings
	InvalidProductInput = "check 'slug', 'name', 'price', 'currency' or 'stock' keys, invalid request"
	InvalidProductID    = "entered product ID is invalid"
	InvalidRestockInput = "check 'quantity' key, invalid request"
	ProductCreated      = "Product Created Successfully"
	ProductUpdated      = "Product Updated Successfully"
	ProductDeleted      = "Product Deleted Successfully"
	ProductFetched      = "Product Fetched Successfully"
	ProductsFetched     = "Products Fetched Successfully"
	ProductRestocked    = "Product Restocked Successfully"

	/// Cart Related Strings
	InvalidCartInput = "check 'product_id' or 'quantity' keys, invalid request"
	CartFetched      = "Cart Fetched Successfully"
	CartUpdated      = "Cart Updated Successfully"
	CartCleared      = "Cart Cleared Successfully"

	/// Order Related Strings
	InvalidOrderInput  = "check 'wallet_id' key, invalid request"
	InvalidOrderID     = "entered order ID is invalid"
	InvalidStatusInput = "check 'status' key, invalid request"
	OrderPlaced        = "Order Placed Successfully"
	OrderFetched       = "Order Fetched Successfully"
	OrdersFetched      = "Orders Fetched Successfully"
	OrderStatusUpdated = "Order Status Updated Successfully"
)
