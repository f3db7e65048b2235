package http

// CreateSession godoc
// @Summary Start a cart session
// @Description Returns a new session id and an empty cart
// @Tags Cart
// @Produce json
// @Success 201 {object} object{success=bool,data=object{sessionId=string,items=array,total=number}}
// @Router /api/cart [post]
func (h *CartHandler) CreateSessionDoc() {}

// GetCart godoc
// @Summary Get a session cart
// @Tags Cart
// @Produce json
// @Param session path string true "Cart session id"
// @Param lang query string false "en or bn"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cart/{session} [get]
func (h *CartHandler) GetCartDoc() {}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Merges into an existing line for the same product
// @Tags Cart
// @Accept json
// @Produce json
// @Param session path string true "Cart session id"
// @Param request body object{productId=string,quantity=number,selectedOptions=object{cuttingSize=string,headCut=string,cuttingStyle=string}} true "Line"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/{session}/items [post]
func (h *CartHandler) AddItemDoc() {}

// UpdateItem godoc
// @Summary Set a line quantity
// @Description A quantity of 0 removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param session path string true "Cart session id"
// @Param productId path string true "Line product id"
// @Param request body object{quantity=number} true "Quantity"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Router /api/cart/{session}/items/{productId} [patch]
func (h *CartHandler) UpdateItemDoc() {}

// RemoveItem godoc
// @Summary Remove a line
// @Tags Cart
// @Produce json
// @Param session path string true "Cart session id"
// @Param productId path string true "Line product id"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/{session}/items/{productId} [delete]
func (h *CartHandler) RemoveItemDoc() {}

// ClearCart godoc
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Param session path string true "Cart session id"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cart/{session} [delete]
func (h *CartHandler) ClearCartDoc() {}

// AddPackage godoc
// @Summary Add a customized package
// @Description Every call adds a separate line with quantity 1
// @Tags Cart
// @Accept json
// @Produce json
// @Param session path string true "Cart session id"
// @Param slug path string true "Package slug"
// @Param request body object{tier=string,items=array} false "Customization"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/{session}/packages/{slug} [post]
func (h *CartHandler) AddPackageDoc() {}
