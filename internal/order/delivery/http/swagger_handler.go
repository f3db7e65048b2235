package http

// PlaceOrder godoc
// @Summary Check out a cart
// @Description Re-prices the session cart from the live catalog and places an order awaiting payment verification
// @Tags Orders
// @Accept json
// @Produce json
// @Param session path string true "Cart session ID"
// @Param request body object{customer=object{name=string,phone=string,address=string,area=string,notes=string},customerPhone=string,paymentMethod=string,transactionId=string} true "Checkout data. Returning customers may send customerPhone instead of customer."
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Router /api/checkout/{session} [post]
func (h *OrderHandler) PlaceOrderDoc() {}

// GetOrder godoc
// @Summary Track an order
// @Tags Orders
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{orderId} [get]
func (h *OrderHandler) GetOrderDoc() {}

// ListOrders godoc
// @Summary List orders
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending_verification, verified, rejected, expired"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} object{success=bool,data=object{orders=array,pagination=object}}
// @Router /api/admin/orders [get]
func (h *OrderHandler) ListOrdersDoc() {}

// GetOrderDetail godoc
// @Summary Get an order with customer details
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/admin/orders/{orderId} [get]
func (h *OrderHandler) GetOrderDetailDoc() {}

// VerifyPayment godoc
// @Summary Approve or reject an order's payment
// @Description Approved orders have their stock decremented once
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param request body object{approved=bool,note=string} true "Decision"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/admin/orders/{orderId}/verify [patch]
func (h *OrderHandler) VerifyPaymentDoc() {}

// ExpireOrders godoc
// @Summary Expire stale unverified orders now
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{expired=int}}
// @Router /api/admin/orders/expire [post]
func (h *OrderHandler) ExpireOrdersDoc() {}

// GetStats godoc
// @Summary Order statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/admin/orders/stats [get]
func (h *OrderHandler) GetStatsDoc() {}
