package sqlinline

const QInsertUser = `--sql d618b713-31a3-4589-a4a4-668e9d3d8a3b
insert into users (id, email, password_hash, first_name, last_name, phone, cpf_cnpj, address, cep, picture,
                   user_type, is_staff, is_superuser, is_active, date_joined)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, $8::text, $9::text, $10::text,
        $11::text, $12::boolean, $13::boolean, $14::boolean, $15::timestamptz);
`

const userColumns = `id, email, password_hash, first_name, last_name, phone, cpf_cnpj, address, cep, picture,
       user_type, is_staff, is_superuser, is_active, date_joined`

const QSelectUserByID = `--sql 8f5fb744-bbc0-4486-8aa2-66699ded19dd
select ` + userColumns + `
from users
where id = $1::uuid
limit 1;
`

const QSelectUserByEmail = `--sql 5c4a79db-e9d4-4258-bee1-675e7c254322
select ` + userColumns + `
from users
where email = $1::text
limit 1;
`

const QUpdateUserProfile = `--sql 5f064a8e-b91f-4ee0-8efe-0ce5680ccf40
update users
set email = $2::text,
    first_name = $3::text,
    last_name = $4::text,
    phone = $5::text,
    cpf_cnpj = $6::text,
    address = $7::text,
    cep = $8::text,
    picture = $9::text,
    user_type = $10::text
where id = $1::uuid;
`

const QSetUserActive = `--sql b348c7b2-125c-4212-90c4-c86f0caef2ca
update users
set is_active = $2::boolean
where id = $1::uuid;
`

const QCountUserReferences = `--sql f618178f-2674-402c-91bf-e036ab84799b
select
    (select count(*) from donations where user_id = $1::uuid),
    (select count(*) from testimonials where user_id = $1::uuid);
`

const QDeleteUser = `--sql 97a2e5ba-46a0-4a59-a9fc-7781111cfa05
delete from users
where id = $1::uuid;
`
