package http

// Login godoc
// @Summary Admin login
// @Description Exchanges the admin credentials for a bearer token
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,username=string,role=string}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/admin/login [post]
func (h *AdminHandler) LoginDoc() {}

// Dashboard godoc
// @Summary Admin dashboard
// @Description Catalog and order statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{catalog=object,orders=object,pendingVerification=int}}
// @Router /api/admin/dashboard [get]
func (h *AdminHandler) DashboardDoc() {}
